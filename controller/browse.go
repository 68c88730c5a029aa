package controller

import (
	"net/http"

	"github.com/golang/glog"

	e "github.com/microcosm-cc/registry/errors"
	h "github.com/microcosm-cc/registry/helpers"
	"github.com/microcosm-cc/registry/models"
)

// BrowseController lists packages by keyword, author, stars and so on
type BrowseController struct {
	Packages models.PackageStore
}

// BrowseType is a page of a browse list
type BrowseType struct {
	Kind   string                   `json:"kind"`
	Arg    string                   `json:"arg,omitempty"`
	Offset int64                    `json:"offset"`
	Limit  int64                    `json:"limit"`
	Items  []models.BrowseEntryType `json:"items"`
}

// BrowseHandler is the web handler for browse lists
func (reg *Registry) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w, reg.Sessions)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	ctl := BrowseController{Packages: reg.Packages}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "GET", "HEAD"})
		return
	case "HEAD":
		ctl.ReadMany(c)
	case "GET":
		ctl.ReadMany(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// ReadMany handles GET
func (ctl *BrowseController) ReadMany(c *models.Context) {
	kind := c.RouteVars["kind"]
	if !h.BrowseKinds[kind] {
		c.RespondWithErrorDetail(
			e.New("controller.Browse", e.UnknownBrowseKind, "Unknown browse kind: "+kind),
			http.StatusBadRequest,
		)
		return
	}

	limit, offset, status, err := h.GetLimitAndOffset(c.Request.URL.Query())
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	m := BrowseType{
		Kind:   kind,
		Arg:    c.RouteVars["arg"],
		Offset: offset,
		Limit:  limit,
	}

	m.Items, err = ctl.Packages.GetBrowseData(
		c.Request.Context(),
		m.Kind,
		m.Arg,
		m.Offset,
		m.Limit,
		false,
	)
	if err != nil {
		glog.Errorf("%s: browse %s %s: %+v", c.RequestID, m.Kind, m.Arg, err)
		c.RespondWithErrorMessage(
			"There was an error fetching the list",
			http.StatusInternalServerError,
		)
		return
	}
	if m.Items == nil {
		m.Items = []models.BrowseEntryType{}
	}

	c.RespondWithData(m)
}
