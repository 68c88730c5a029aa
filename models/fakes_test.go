package models

import (
	"context"
	"errors"
	"sync"
)

var errStore = errors.New("store unavailable")

type fakePackageStore struct {
	mu sync.Mutex

	packages  map[string]*PackageType
	getErr    error
	browse    []BrowseEntryType
	browseErr error

	getCalls    int
	browseCalls []string
}

func (s *fakePackageStore) GetPackage(
	ctx context.Context,
	name string,
) (
	*PackageType,
	error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.packages[name], nil
}

func (s *fakePackageStore) GetBrowseData(
	ctx context.Context,
	kind string,
	arg string,
	skip int64,
	limit int64,
	noPackageData bool,
) (
	[]BrowseEntryType,
	error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browseCalls = append(s.browseCalls, kind+":"+arg)
	if s.browseErr != nil {
		return nil, s.browseErr
	}
	return s.browse, nil
}

type fakeDownloadStore struct {
	mu sync.Mutex

	downloads DownloadsType
	err       error
	calls     int
}

func (s *fakeDownloadStore) GetAllDownloads(
	ctx context.Context,
	name string,
) (
	DownloadsType,
	error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return DownloadsType{}, s.err
	}
	return s.downloads, nil
}

type recordingMetricSink struct {
	mu      sync.Mutex
	metrics []MetricType
}

func (s *recordingMetricSink) Metric(m MetricType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *recordingMetricSink) named(name string) []MetricType {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ms []MetricType
	for _, m := range s.metrics {
		if m.Name == name {
			ms = append(ms, m)
		}
	}
	return ms
}

// failingCache fails every operation
type failingCache struct{}

func (failingCache) Set(key string, data interface{}, ttl int32) error { return errStore }
func (failingCache) Get(key string, dst interface{}) error             { return errStore }
func (failingCache) Delete(key string) error                           { return errStore }

func fooPackage() *PackageType {
	return &PackageType{
		Name:        "foo",
		Description: "package level description",
		DistTags:    map[string]string{"latest": "1.2.0"},
		Versions: map[string]VersionType{
			"1.0.0": {Name: "foo", Version: "1.0.0"},
			"1.2.0": {
				Name:         "foo",
				Version:      "1.2.0",
				Description:  "A foo for your bar",
				Dependencies: map[string]string{"zed": "^1.0.0", "bar": "~2.1.0"},
				Keywords:     []string{"foo", "bar"},
				Repository:   &RepositoryType{Type: "git", URL: "git+https://github.com/example/foo.git"},
				License:      "MIT",
				NpmUser:      &PersonType{Name: "alice", Email: "alice@example.com"},
			},
		},
		Time: &TimeType{
			Created:  "2019-01-01T00:00:00Z",
			Modified: "2019-06-01T00:00:00Z",
			Versions: map[string]string{
				"1.0.0": "2019-01-01T00:00:00Z",
				"1.2.0": "2019-06-01T00:00:00Z",
			},
		},
		Users:       map[string]bool{"alice": true, "bob": false},
		Readme:      "# foo\n\nDoes things.",
		Maintainers: []PersonType{{Name: "alice", Email: "alice@example.com"}},
	}
}
