/*
Package cache provides the key/value store that holds session payloads. It
should not be of any concern to the callee where this cache is, only that set,
get and delete are atomic for a single key and that a time to live of zero
means the item lives until it is deleted or evicted.
*/
package cache
