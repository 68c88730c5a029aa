package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	h "github.com/microcosm-cc/registry/helpers"
)

// PresentedPackageType is the display-safe projection of a package. Nothing
// from the stored document reaches a page except through this type.
type PresentedPackageType struct {
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Version       string            `json:"version"`
	Deprecated    string            `json:"deprecated,omitempty"`
	Readme        string            `json:"readme,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
	License       string            `json:"license,omitempty"`
	Homepage      string            `json:"homepage,omitempty"`
	Repository    string            `json:"repository,omitempty"`
	Bugs          string            `json:"bugs,omitempty"`
	Maintainers   []MaintainerType  `json:"maintainers,omitempty"`
	Publisher     *MaintainerType   `json:"publisher,omitempty"`
	LastPublished *time.Time        `json:"lastPublished,omitempty"`
	PublishedAgo  string            `json:"publishedAgo,omitempty"`
	Dependencies  []string          `json:"dependencies"`
	Dependents    []BrowseEntryType `json:"dependents"`
	Downloads     OptionalDownloads `json:"downloads"`
	DownloadCount string            `json:"downloadCount,omitempty"`
	Stars         int               `json:"stars"`
	IsStarred     bool              `json:"isStarred"`
}

// MaintainerType is a person shown on the page, the email is not
type MaintainerType struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// OptionalDownloads renders as false when there is no download record
type OptionalDownloads struct {
	Record *DownloadRecordType
}

// MarshalJSON writes the record, or false
func (m OptionalDownloads) MarshalJSON() ([]byte, error) {
	if m.Record == nil {
		return []byte("false"), nil
	}
	return json.Marshal(m.Record)
}

var (
	githubShorthand = regexp.MustCompile(`^(?:github:)?([\w.-]+)/([\w.-]+)$`)
	scpLikeURL      = regexp.MustCompile(`^git@([^:]+):(.+)$`)
)

// PresentPackage copies the displayable parts of an augmented package into a
// PresentedPackageType. It does no I/O. It fails when the package has no name
// or no latest version to show.
func PresentPackage(
	pkg *PackageType,
	viewer *UserType,
	now time.Time,
) (
	PresentedPackageType,
	error,
) {
	if pkg == nil {
		return PresentedPackageType{}, errors.New("no package to present")
	}
	if pkg.Name == "" {
		return PresentedPackageType{}, errors.New("package has no name")
	}

	latest := pkg.DistTags["latest"]
	if latest == "" {
		return PresentedPackageType{},
			fmt.Errorf("package %s has no latest dist-tag", pkg.Name)
	}
	version, ok := pkg.Versions[latest]
	if !ok {
		return PresentedPackageType{},
			fmt.Errorf("package %s latest version %s is missing", pkg.Name, latest)
	}

	m := PresentedPackageType{
		Name:         pkg.Name,
		Version:      latest,
		Deprecated:   SanitiseText(version.Deprecated),
		Dependencies: []string{},
		Dependents:   pkg.Dependents,
		Downloads:    OptionalDownloads{Record: pkg.Downloads},
	}
	if m.Dependents == nil {
		m.Dependents = []BrowseEntryType{}
	}
	if pkg.Downloads != nil {
		m.DownloadCount = humanize.Comma(pkg.Downloads.Downloads)
	}

	// The latest version's own metadata wins over the package level copy
	m.Description = SanitiseText(firstNonEmpty(version.Description, pkg.Description))
	m.Homepage = safeURL(firstNonEmpty(version.Homepage, pkg.Homepage))
	m.License = SanitiseText(firstNonEmpty(string(version.License), string(pkg.License)))

	keywords := version.Keywords
	if len(keywords) == 0 {
		keywords = pkg.Keywords
	}
	for _, k := range keywords {
		m.Keywords = append(m.Keywords, SanitiseText(k))
	}

	repository := version.Repository
	if repository == nil {
		repository = pkg.Repository
	}
	if repository != nil {
		m.Repository = RepositoryURL(repository.URL)
	}

	bugs := version.Bugs
	if bugs == nil {
		bugs = pkg.Bugs
	}
	if bugs != nil {
		m.Bugs = safeURL(bugs.URL)
	}

	if pkg.Readme != "" {
		m.Readme = string(SanitiseHTML(MarkdownToHTML([]byte(pkg.Readme))))
	}

	for name := range version.Dependencies {
		m.Dependencies = append(m.Dependencies, name)
	}
	sort.Strings(m.Dependencies)

	for _, p := range pkg.Maintainers {
		m.Maintainers = append(m.Maintainers, presentPerson(p))
	}
	if version.NpmUser != nil {
		publisher := presentPerson(*version.NpmUser)
		m.Publisher = &publisher
	}

	if pkg.Time != nil {
		published := pkg.Time.Versions[latest]
		if published == "" {
			published = pkg.Time.Modified
		}
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			m.LastPublished = &t
			m.PublishedAgo = humanize.RelTime(t, now, "ago", "from now")
		}
	}

	for _, starred := range pkg.Users {
		if starred {
			m.Stars++
		}
	}
	m.IsStarred = viewer != nil && pkg.Users != nil && pkg.Users[viewer.Name]

	return m, nil
}

func presentPerson(p PersonType) MaintainerType {
	m := MaintainerType{Name: SanitiseText(p.Name)}
	if p.Email != "" {
		m.Avatar = h.Gravatar(p.Email)
	}
	return m
}

// RepositoryURL turns the many ways a repository is written into a browsable
// https URL, or "" when it cannot.
func RepositoryURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := githubShorthand.FindStringSubmatch(s); m != nil {
		return "https://github.com/" + m[1] + "/" + strings.TrimSuffix(m[2], ".git")
	}
	if m := scpLikeURL.FindStringSubmatch(s); m != nil {
		s = "https://" + m[1] + "/" + m[2]
	}

	s = strings.TrimPrefix(s, "git+")
	if strings.HasPrefix(s, "git://") {
		s = "https://" + strings.TrimPrefix(s, "git://")
	}
	if strings.HasPrefix(s, "ssh://") {
		s = "https://" + strings.TrimPrefix(s, "ssh://")
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	u.User = nil
	u.Path = strings.TrimSuffix(u.Path, ".git")

	return u.String()
}

// safeURL only lets http and https links through
func safeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
