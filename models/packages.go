package models

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	h "github.com/microcosm-cc/registry/helpers"
)

// PackageType is a package document as held by the package store. Dependents
// and Downloads are not stored, they are filled in when a package page is
// assembled.
type PackageType struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	DistTags    map[string]string      `json:"dist-tags,omitempty"`
	Versions    map[string]VersionType `json:"versions,omitempty"`
	Time        *TimeType              `json:"time,omitempty"`
	Users       map[string]bool        `json:"users,omitempty"`
	Readme      string                 `json:"readme,omitempty"`
	Maintainers []PersonType           `json:"maintainers,omitempty"`
	Author      *PersonType            `json:"author,omitempty"`
	Repository  *RepositoryType        `json:"repository,omitempty"`
	Homepage    string                 `json:"homepage,omitempty"`
	Bugs        *BugsType              `json:"bugs,omitempty"`
	Keywords    []string               `json:"keywords,omitempty"`
	License     LicenseType            `json:"license,omitempty"`

	Dependents []BrowseEntryType   `json:"-"`
	Downloads  *DownloadRecordType `json:"-"`
}

// VersionType is the document for a single published version
type VersionType struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Description  string            `json:"description,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	Homepage     string            `json:"homepage,omitempty"`
	Repository   *RepositoryType   `json:"repository,omitempty"`
	Bugs         *BugsType         `json:"bugs,omitempty"`
	License      LicenseType       `json:"license,omitempty"`
	NpmUser      *PersonType       `json:"_npmUser,omitempty"`
	Deprecated   string            `json:"deprecated,omitempty"`
}

// TimeType holds the publish times of a package. Every member of the stored
// object is a timestamp string except "unpublished", which is an object.
type TimeType struct {
	Created     string
	Modified    string
	Versions    map[string]string
	Unpublished *UnpublishedTimeType
}

// UnpublishedTimeType marks a package as removed from the registry
type UnpublishedTimeType struct {
	Time        string            `json:"time"`
	Name        string            `json:"name,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Maintainers []PersonType      `json:"maintainers,omitempty"`
}

// UnmarshalJSON splits the time object into its known members and the per
// version timestamps
func (m *TimeType) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = TimeType{}
	for key, value := range raw {
		switch key {
		case "unpublished":
			// A null marker is not an unpublish
			if string(bytes.TrimSpace(value)) == "null" {
				continue
			}
			var u UnpublishedTimeType
			if err := json.Unmarshal(value, &u); err != nil {
				return fmt.Errorf("time.unpublished: %v", err)
			}
			m.Unpublished = &u

		case "created":
			json.Unmarshal(value, &m.Created)

		case "modified":
			json.Unmarshal(value, &m.Modified)

		default:
			var t string
			if err := json.Unmarshal(value, &t); err != nil {
				// Not a timestamp, nothing we can show for it
				continue
			}
			if m.Versions == nil {
				m.Versions = map[string]string{}
			}
			m.Versions[key] = t
		}
	}

	return nil
}

// MarshalJSON writes the time object back in its stored shape
func (m TimeType) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	for version, t := range m.Versions {
		out[version] = t
	}
	if m.Created != "" {
		out["created"] = m.Created
	}
	if m.Modified != "" {
		out["modified"] = m.Modified
	}
	if m.Unpublished != nil {
		out["unpublished"] = m.Unpublished
	}
	return json.Marshal(out)
}

var personString = regexp.MustCompile(`^([^<(]*?)\s*(?:<([^>]*)>)?\s*(?:\(([^)]*)\))?$`)

// PersonType is an author, maintainer or publisher
type PersonType struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// UnmarshalJSON accepts both the object form and the "Name <email> (url)"
// string form
func (m *PersonType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = PersonType{}
		if parts := personString.FindStringSubmatch(strings.TrimSpace(s)); parts != nil {
			m.Name, m.Email, m.URL = parts[1], parts[2], parts[3]
		} else {
			m.Name = s
		}
		return nil
	}

	type person PersonType
	var p person
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = PersonType(p)
	return nil
}

// RepositoryType is where the package source lives
type RepositoryType struct {
	Type string `json:"type,omitempty"`
	URL  string `json:"url"`
}

// UnmarshalJSON accepts both {"type","url"} and a bare URL string
func (m *RepositoryType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = RepositoryType{URL: s}
		return nil
	}

	type repository RepositoryType
	var r repository
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*m = RepositoryType(r)
	return nil
}

// BugsType is where issues are reported
type BugsType struct {
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts both {"url"} and a bare URL string
func (m *BugsType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = BugsType{URL: s}
		return nil
	}

	type bugs BugsType
	var b bugs
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*m = BugsType(b)
	return nil
}

// LicenseType is a license identifier. Older documents hold {"type": "MIT"}.
type LicenseType string

// UnmarshalJSON accepts a string or an object with a type member
func (m *LicenseType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = LicenseType(s)
		return nil
	}

	var l struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &l); err != nil {
		// Arrays of licenses and other oddities are not shown
		*m = ""
		return nil
	}
	*m = LicenseType(l.Type)
	return nil
}

// PackageStore is the narrow query interface onto the package database
type PackageStore interface {
	// GetPackage returns the package document, or nil when there is no
	// package by that name
	GetPackage(ctx context.Context, name string) (*PackageType, error)

	// GetBrowseData lists packages for a browse kind (see helpers.BrowseKinds).
	// When noPackageData is set only the names are populated.
	GetBrowseData(
		ctx context.Context,
		kind string,
		arg string,
		skip int64,
		limit int64,
		noPackageData bool,
	) (
		[]BrowseEntryType,
		error,
	)
}

// PGPackageStore is a PackageStore over the registry Postgres database
type PGPackageStore struct {
	db *sql.DB
}

// NewPGPackageStore uses the connection already established by
// helpers.InitDBConnection
func NewPGPackageStore() (*PGPackageStore, error) {
	db, err := h.GetConnection()
	if err != nil {
		return nil, err
	}
	return &PGPackageStore{db: db}, nil
}

// GetPackage fetches and decodes a package document
func (s *PGPackageStore) GetPackage(
	ctx context.Context,
	name string,
) (
	*PackageType,
	error,
) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `
SELECT doc
  FROM packages
 WHERE name = $1`,
		name,
	).Scan(
		&doc,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("Database query failed: %v", err.Error())
	}

	var m PackageType
	err = json.Unmarshal(doc, &m)
	if err != nil {
		return nil, fmt.Errorf("Package document %s is malformed: %v", name, err.Error())
	}

	return &m, nil
}
