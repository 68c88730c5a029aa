package models

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	e "github.com/microcosm-cc/registry/errors"
	h "github.com/microcosm-cc/registry/helpers"
)

// PackageViewType is what the package page is rendered from. Exactly one of
// Package, Unpublished and NotFound is set, and NotFound is left nil when the
// requested name could never be published.
type PackageViewType struct {
	Title       string                  `json:"title,omitempty"`
	Package     *PresentedPackageType   `json:"package,omitempty"`
	Unpublished *UnpublishedPackageType `json:"unpublished,omitempty"`
	NotFound    *NotFoundPackageType    `json:"notFound,omitempty"`
}

// UnpublishedPackageType is all that is shown for an unpublished package
type UnpublishedPackageType struct {
	Name         string `json:"name"`
	UnpubFromNow string `json:"unpubFromNow"`
}

// NotFoundPackageType carries the name a visitor could publish
type NotFoundPackageType struct {
	Name string `json:"name"`
}

// PackageViews assembles package pages from the package and download stores
type PackageViews struct {
	Packages  PackageStore
	Downloads DownloadStore
	Metrics   MetricSink

	// Now is the clock used for latency and "published ago" text
	Now func() time.Time
}

// NewPackageViews wires the stores together. A nil metrics sink discards
// metrics.
func NewPackageViews(
	packages PackageStore,
	downloads DownloadStore,
	metrics MetricSink,
) *PackageViews {
	return &PackageViews{
		Packages:  packages,
		Downloads: downloads,
		Metrics:   metrics,
		Now:       time.Now,
	}
}

func (v *PackageViews) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

func (v *PackageViews) metric(m MetricType) {
	if v.Metrics != nil {
		v.Metrics.Metric(m)
	}
}

// GetPackageView fetches a package with its dependents and download counts and
// presents it for viewer, who may be nil. The status is one of:
//
//	200 the view has Package
//	404 the package does not exist, see the error code for whether the name
//	    is publishable
//	410 the package was unpublished, the view has Unpublished, err is nil
//	500 a store failure or malformed package document
func (v *PackageViews) GetPackageView(
	ctx context.Context,
	name string,
	viewer *UserType,
) (
	PackageViewType,
	int,
	error,
) {
	const fn = "models.GetPackageView"

	v.metric(MetricType{
		Name:  "showPackage",
		Value: 1,
		Tags:  map[string]string{"package": name},
	})

	pkg, err := v.Packages.GetPackage(ctx, name)
	if err != nil {
		glog.Errorf("fetching package %s: %+v", name, err)
		return PackageViewType{}, http.StatusInternalServerError,
			e.New(fn, e.InternalError, "There was an error fetching the package")
	}

	if pkg == nil {
		if !h.ValidatePackageName(name).Valid {
			glog.Infof("request for invalid package name: %s", name)
			return PackageViewType{}, http.StatusNotFound,
				e.New(fn, e.InvalidPackageName, "Package not found")
		}

		return PackageViewType{NotFound: &NotFoundPackageType{Name: name}},
			http.StatusNotFound,
			e.New(fn, e.PackageNotFound, "Package not found")
	}

	if pkg.Time != nil && pkg.Time.Unpublished != nil {
		return PackageViewType{
			Title: name,
			Unpublished: &UnpublishedPackageType{
				Name:         name,
				UnpubFromNow: formatUnpublished(pkg.Time.Unpublished.Time),
			},
		}, http.StatusGone, nil
	}

	var (
		g          errgroup.Group
		dependents []BrowseEntryType
		downloads  DownloadsType
	)
	g.Go(func() error {
		dependents = v.FetchDependents(ctx, name)
		return nil
	})
	g.Go(func() error {
		var err error
		downloads, err = v.Downloads.GetAllDownloads(ctx, name)
		return err
	})

	if err := g.Wait(); err != nil {
		glog.Warningf("fetching dependents and downloads for %s: %+v", name, err)
		pkg.Dependents = []BrowseEntryType{}
		pkg.Downloads = nil
	} else {
		pkg.Dependents = dependents
		pkg.Downloads = downloads.Current()
	}

	presented, err := PresentPackage(pkg, viewer, v.now())
	if err != nil {
		glog.Errorf("presentPackage() responded with error; package=%s: %+v", name, err)
		return PackageViewType{}, http.StatusInternalServerError,
			e.New(fn, e.InternalError, "There was an error displaying the package")
	}

	return PackageViewType{
		Title:   presented.Name,
		Package: &presented,
	}, http.StatusOK, nil
}

// formatUnpublished renders the unpublish time in UTC. A time that cannot be
// parsed is shown as stored.
func formatUnpublished(t string) string {
	parsed, err := time.Parse(time.RFC3339, t)
	if err != nil {
		glog.Warningf("unpublished time %q: %v", t, err)
		return t
	}
	return parsed.UTC().Format(h.UnpublishedTimeFormat)
}

// String is used when logging
func (m PackageViewType) String() string {
	switch {
	case m.Package != nil:
		return fmt.Sprintf("package %s", m.Package.Name)
	case m.Unpublished != nil:
		return fmt.Sprintf("unpublished %s", m.Unpublished.Name)
	case m.NotFound != nil:
		return fmt.Sprintf("not found %s", m.NotFound.Name)
	}
	return "not found"
}
