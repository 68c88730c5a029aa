package models

import (
	"context"
	"time"

	"github.com/golang/glog"

	h "github.com/microcosm-cc/registry/helpers"
)

// FetchDependents lists the packages that depend on name. Dependents are a
// secondary part of the package page, so a store failure is logged and
// metered and an empty list is returned instead.
func (v *PackageViews) FetchDependents(ctx context.Context, name string) []BrowseEntryType {
	start := v.now()

	dependents, err := v.Packages.GetBrowseData(
		ctx,
		h.BrowseDepended,
		name,
		0,
		h.DependentsLimit,
		true,
	)

	v.metric(MetricType{
		Name:  "latency",
		Value: int64(v.now().Sub(start) / time.Millisecond),
		Tags: map[string]string{
			"type":   "postgres",
			"browse": h.BrowseDepended,
		},
	})

	if err != nil {
		msg := "unable to get depended browse data; package=" + name
		glog.Errorf("%s: %+v", msg, err)
		v.metric(MetricType{
			Name:  "error",
			Value: 1,
			Tags: map[string]string{
				"type":    "postgres",
				"browse":  h.BrowseDepended,
				"message": msg,
				"package": name,
			},
		})
		return []BrowseEntryType{}
	}

	if dependents == nil {
		return []BrowseEntryType{}
	}

	return dependents
}
