package server

import (
	"net/http"

	"github.com/microcosm-cc/registry/controller"
)

type route struct {
	path    string
	handler func(http.ResponseWriter, *http.Request)
}

// routes lists every URL the registry answers. Scoped package names contain a
// slash and so are routed as {scope}/{package}.
func routes(reg *controller.Registry) []route {
	return []route{
		{"/package/{scope:@[^/]+}/{package}", reg.PackageHandler},
		{"/package/{scope:@[^/]+}/{package}/v/{version}", reg.PackageHandler},
		{"/package/{package}", reg.PackageHandler},
		{"/package/{package}/v/{version}", reg.PackageHandler},

		{"/browse/{kind:[a-z]+}", reg.BrowseHandler},
		{"/browse/{kind:[a-z]+}/{arg}", reg.BrowseHandler},

		{"/whoami", reg.WhoAmIHandler},
		{"/session", reg.SessionHandler},

		{"/version", controller.VersionHandler},
	}
}
