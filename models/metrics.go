package models

import (
	"sort"
	"strings"

	"github.com/golang/glog"
)

// MetricType is a single measurement. Value is a count, or milliseconds for
// latency metrics.
type MetricType struct {
	Name  string
	Value int64
	Tags  map[string]string
}

// MetricSink receives measurements. Implementations must not block.
type MetricSink interface {
	Metric(m MetricType)
}

// GlogMetricSink writes metrics to the log at verbosity 1
type GlogMetricSink struct{}

// Metric logs the measurement with its tags in a stable order
func (GlogMetricSink) Metric(m MetricType) {
	if !glog.V(1) {
		return
	}

	keys := make([]string, 0, len(m.Tags))
	for k := range m.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]string, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, k+"="+m.Tags[k])
	}

	glog.Infof("metric name=%s value=%d %s", m.Name, m.Value, strings.Join(tags, " "))
}
