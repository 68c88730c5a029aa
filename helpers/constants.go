package helpers

// Browse kinds understood by the package store
const (
	BrowseDepended = "depended"
	BrowseKeyword  = "keyword"
	BrowseAuthor   = "author"
	BrowseStar     = "star"
	BrowseUserStar = "userstar"
	BrowseUpdated  = "updated"
)

// BrowseKinds is the set of valid browse kinds
var BrowseKinds = map[string]bool{
	BrowseDepended: true,
	BrowseKeyword:  true,
	BrowseAuthor:   true,
	BrowseStar:     true,
	BrowseUserStar: true,
	BrowseUpdated:  true,
}

const (
	// DependentsLimit is the page window used when listing the dependents of a
	// package on its page
	DependentsLimit int64 = 1000

	// DefaultQueryLimit is the browse page size when none is requested
	DefaultQueryLimit int64 = 25

	// MaxQueryLimit caps the browse page size
	MaxQueryLimit int64 = 1000

	// MaxPackageNameLength is the longest name that may be published
	MaxPackageNameLength int = 214

	// UnpublishedTimeFormat renders the time a package was removed
	UnpublishedTimeFormat string = "Mon Jan 02 2006 15:04:05 -07:00"
)
