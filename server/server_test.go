package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/microcosm-cc/registry/cache"
	"github.com/microcosm-cc/registry/controller"
	h "github.com/microcosm-cc/registry/helpers"
	"github.com/microcosm-cc/registry/models"
)

type stubPackages struct {
	packages map[string]*models.PackageType
}

func (s stubPackages) GetPackage(
	ctx context.Context,
	name string,
) (
	*models.PackageType,
	error,
) {
	return s.packages[name], nil
}

func (s stubPackages) GetBrowseData(
	ctx context.Context,
	kind string,
	arg string,
	skip int64,
	limit int64,
	noPackageData bool,
) (
	[]models.BrowseEntryType,
	error,
) {
	if kind == h.BrowseKeyword && arg == "broken" {
		return nil, errors.New("query failed")
	}
	return []models.BrowseEntryType{{Name: "dependent-of-" + arg}}, nil
}

type stubDownloads struct{}

func (stubDownloads) GetAllDownloads(
	ctx context.Context,
	name string,
) (
	models.DownloadsType,
	error,
) {
	return models.DownloadsType{
		Records: []models.DownloadRecordType{{Downloads: 42, Package: name}},
	}, nil
}

func testPackage(name string) *models.PackageType {
	return &models.PackageType{
		Name:     name,
		DistTags: map[string]string{"latest": "1.0.0"},
		Versions: map[string]models.VersionType{
			"1.0.0": {Name: name, Version: "1.0.0"},
		},
		Users: map[string]bool{"bob": true},
	}
}

func newTestServer() (*httptest.Server, *models.Sessions) {
	packages := stubPackages{packages: map[string]*models.PackageType{
		"foo":        testPackage("foo"),
		"@scope/bar": testPackage("@scope/bar"),
		"gone": {
			Name: "gone",
			Time: &models.TimeType{
				Unpublished: &models.UnpublishedTimeType{Time: "2020-01-01T00:00:00Z"},
			},
		},
	}}
	sessions := models.NewSessions(cache.NewMemoryStore(nil))

	reg := &controller.Registry{
		Views:    models.NewPackageViews(packages, stubDownloads{}, nil),
		Packages: packages,
		Sessions: sessions,
	}

	return httptest.NewServer(NewRouter(reg)), sessions
}

type response struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"error"`
}

func do(t *testing.T, req *http.Request) (*http.Response, response) {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %+v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	var body response
	json.NewDecoder(resp.Body).Decode(&body)

	return resp, body
}

func get(t *testing.T, url string) (*http.Response, response) {
	req, _ := http.NewRequest("GET", url, nil)
	return do(t, req)
}

func TestPackageRoutes(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	tests := []struct {
		path   string
		status int
		name   string
	}{
		{"/package/foo", http.StatusOK, "foo"},
		{"/package/@scope/bar", http.StatusOK, "@scope/bar"},
		{"/package/gone", http.StatusGone, ""},
		{"/package/not-here", http.StatusNotFound, ""},
		{"/package/UPPER_CASE", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		resp, body := get(t, ts.URL+test.path)
		if resp.StatusCode != test.status {
			t.Errorf("%s: status %d should be %d", test.path, resp.StatusCode, test.status)
			continue
		}
		if test.name == "" {
			continue
		}

		var view models.PackageViewType
		if err := json.Unmarshal(body.Data, &view); err != nil {
			t.Errorf("%s: %+v", test.path, err)
			continue
		}
		if view.Package == nil || view.Package.Name != test.name {
			t.Errorf("%s: expected package %s, got %s", test.path, test.name, body.Data)
		}
	}
}

func TestPackageNotFoundPayloads(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	_, body := get(t, ts.URL+"/package/not-here")
	if !strings.Contains(string(body.Data), `"notFound":{"name":"not-here"}`) {
		t.Errorf("Expected publish encouragement, got %s", body.Data)
	}

	_, body = get(t, ts.URL+"/package/UPPER_CASE")
	if strings.Contains(string(body.Data), "notFound") {
		t.Errorf("Expected no publish encouragement, got %s", body.Data)
	}
}

func TestPackageUnpublished(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	_, body := get(t, ts.URL+"/package/gone")

	expected := `{"title":"gone","unpublished":{"name":"gone","unpubFromNow":"Wed Jan 01 2020 00:00:00 +00:00"}}`
	if string(body.Data) != expected {
		t.Errorf("Expected: %s\nGot     : %s", expected, body.Data)
	}
}

func TestPackageVersionRedirect(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/package/foo/v/1.0.0")
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected status %d, got %d", http.StatusFound, resp.StatusCode)
	}
	if resp.Header.Get("Location") != "/package/foo" {
		t.Errorf("Expected redirect to /package/foo, got %s", resp.Header.Get("Location"))
	}

	resp, _ = get(t, ts.URL+"/package/@scope/bar/v/1.0.0")
	if resp.Header.Get("Location") != "/package/@scope/bar" {
		t.Errorf("Expected redirect to /package/@scope/bar, got %s", resp.Header.Get("Location"))
	}
}

func TestPackageIsStarredForSession(t *testing.T) {
	ts, sessions := newTestServer()
	defer ts.Close()

	user := &models.UserType{Name: "bob"}
	sessions.SetSession(user)

	req, _ := http.NewRequest("GET", ts.URL+"/package/foo", nil)
	req.AddCookie(&http.Cookie{Name: models.SessionCookie, Value: user.Sid})
	resp, body := do(t, req)

	if !strings.Contains(string(body.Data), `"isStarred":true`) {
		t.Errorf("Expected bob to have starred foo, got %s", body.Data)
	}
	if resp.Header.Get("Cache-Control") != "no-cache, max-age=0" {
		t.Errorf("Expected a private response, got %s", resp.Header.Get("Cache-Control"))
	}

	resp, body = get(t, ts.URL+"/package/foo")
	if !strings.Contains(string(body.Data), `"isStarred":false`) {
		t.Errorf("Expected an anonymous view, got %s", body.Data)
	}
	if resp.Header.Get("Cache-Control") != "public, max-age=300" {
		t.Errorf("Expected a public response, got %s", resp.Header.Get("Cache-Control"))
	}
}

func TestBrowseRoutes(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	resp, body := get(t, ts.URL+"/browse/depended/foo?limit=10")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var m controller.BrowseType
	if err := json.Unmarshal(body.Data, &m); err != nil {
		t.Fatalf("%+v", err)
	}
	if m.Kind != "depended" || m.Arg != "foo" || m.Limit != 10 || m.Offset != 0 {
		t.Errorf("Unexpected browse page %+v", m)
	}
	if len(m.Items) != 1 || m.Items[0].Name != "dependent-of-foo" {
		t.Errorf("Unexpected items %+v", m.Items)
	}

	tests := []struct {
		path   string
		status int
	}{
		{"/browse/updated", http.StatusOK},
		{"/browse/nonsense/foo", http.StatusBadRequest},
		{"/browse/keyword/foo?limit=0", http.StatusBadRequest},
		{"/browse/keyword/broken", http.StatusInternalServerError},
	}
	for _, test := range tests {
		resp, _ := get(t, ts.URL+test.path)
		if resp.StatusCode != test.status {
			t.Errorf("%s: status %d should be %d", test.path, resp.StatusCode, test.status)
		}
	}
}

func TestWhoAmIAndLogout(t *testing.T) {
	ts, sessions := newTestServer()
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/whoami")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	user := &models.UserType{Name: "bob", Email: "bob@example.com"}
	sessions.SetSession(user)

	req, _ := http.NewRequest("GET", ts.URL+"/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+user.Sid)
	resp, body := do(t, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var me models.UserType
	json.Unmarshal(body.Data, &me)
	if me.Name != "bob" || me.Sid != user.Sid {
		t.Errorf("Expected bob, got %+v", me)
	}

	req, _ = http.NewRequest("DELETE", ts.URL+"/session", nil)
	req.Header.Set("Authorization", "Bearer "+user.Sid)
	resp, _ = do(t, req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	// The session is gone
	req, _ = http.NewRequest("GET", ts.URL+"/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+user.Sid)
	resp, _ = do(t, req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newTestServer()
	defer ts.Close()

	resp, _ := get(t, ts.URL+"/nothing/here")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
