package controller

import (
	"net/http"

	"github.com/golang/glog"

	"github.com/microcosm-cc/registry/models"
)

// PackageController renders the package page
type PackageController struct {
	Views *models.PackageViews
}

// PackageHandler is the web handler for a package page
func (reg *Registry) PackageHandler(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w, reg.Sessions)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	ctl := PackageController{Views: reg.Views}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "GET", "HEAD"})
		return
	case "HEAD":
		ctl.Read(c)
	case "GET":
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// packageName joins the scope back on to scoped package names, which are
// routed as two path segments
func packageName(c *models.Context) string {
	if scope := c.RouteVars["scope"]; scope != "" {
		return scope + "/" + c.RouteVars["package"]
	}
	return c.RouteVars["package"]
}

// Read handles GET
func (ctl *PackageController) Read(c *models.Context) {
	name := packageName(c)

	// Only the latest version has a page
	if c.RouteVars["version"] != "" {
		c.RespondWithSeeOther("/package/" + name)
		return
	}

	m, status, err := ctl.Views.GetPackageView(c.Request.Context(), name, c.Auth.User)

	switch status {
	case http.StatusOK:
		c.RespondWithData(m)

	case http.StatusGone:
		if glog.V(2) {
			glog.Infof("%s: %s", c.RequestID, m)
		}
		c.Respond(m, status, nil)

	case http.StatusNotFound:
		if glog.V(2) {
			glog.Infof("%s: %s", c.RequestID, m)
		}
		c.Respond(m, status, []string{err.Error()})

	default:
		glog.Errorf("%s: package %s: %+v", c.RequestID, name, err)
		c.RespondWithErrorDetail(err, status)
	}
}
