package models

import (
	"net/http"

	"github.com/golang/glog"

	c "github.com/microcosm-cc/registry/cache"
	e "github.com/microcosm-cc/registry/errors"
	h "github.com/microcosm-cc/registry/helpers"
)

// sessionTTL of zero keeps the session until it is dropped or evicted
const sessionTTL int32 = 0

// UserType is the authenticated user held in the session cache
type UserType struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullname,omitempty"`
	Github   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Homepage string `json:"homepage,omitempty"`
	Sid      string `json:"sid,omitempty"`
}

// Sessions keeps logged in users in the cache, keyed by a session id derived
// from the username. A user has one cached session: logging in again, from
// anywhere, overwrites it, and logging out anywhere drops it.
type Sessions struct {
	Cache c.Store
}

// NewSessions returns a Sessions over the given cache
func NewSessions(store c.Store) *Sessions {
	return &Sessions{Cache: store}
}

// SetSession caches user under its session id and sets user.Sid. The caller
// puts the sid into the client's session token.
func (s *Sessions) SetSession(user *UserType) (int, error) {
	const fn = "models.SetSession"

	if user == nil {
		return http.StatusInternalServerError,
			e.New(fn, e.InternalError, "there was an error setting the cache")
	}

	user.Sid = h.SessionID(user.Name)

	err := s.Cache.Set(user.Sid, *user, sessionTTL)
	if err != nil {
		glog.Errorf("setting session for %s: %+v", user.Name, err)
		return http.StatusInternalServerError,
			e.New(fn, e.InternalError, "there was an error setting the cache")
	}

	return http.StatusOK, nil
}

// DropSession removes the user's cached session and sets user.Sid to the id
// that was dropped. The caller clears the client's session token.
func (s *Sessions) DropSession(user *UserType) (int, error) {
	const fn = "models.DropSession"

	if user == nil {
		return http.StatusInternalServerError,
			e.New(fn, e.InternalError, "there was an error clearing the cache")
	}

	user.Sid = h.SessionID(user.Name)

	err := s.Cache.Delete(user.Sid)
	if err != nil {
		glog.Errorf("dropping session for %s: %+v", user.Name, err)
		return http.StatusInternalServerError,
			e.New(fn, e.InternalError, "there was an error clearing the cache")
	}

	return http.StatusOK, nil
}

// GetSession returns the user cached under sid
func (s *Sessions) GetSession(sid string) (UserType, int, error) {
	const fn = "models.GetSession"

	if sid == "" {
		return UserType{}, http.StatusUnauthorized,
			e.New(fn, e.InvalidSession, "Invalid session")
	}

	var m UserType
	err := s.Cache.Get(sid, &m)
	if err == c.ErrCacheMiss {
		return UserType{}, http.StatusUnauthorized,
			e.New(fn, e.InvalidSession, "Invalid session")
	} else if err != nil {
		glog.Errorf("getting session %s: %+v", sid, err)
		return UserType{}, http.StatusInternalServerError,
			e.New(fn, e.InternalError, "there was an error reading the cache")
	}

	return m, http.StatusOK, nil
}
