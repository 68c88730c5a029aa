package controller

import (
	"net/http"

	"github.com/microcosm-cc/registry/models"
)

// WhoAmIController returns the user behind the session
type WhoAmIController struct{}

// WhoAmIHandler is the web handler
func (reg *Registry) WhoAmIHandler(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w, reg.Sessions)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	ctl := WhoAmIController{}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "GET"})
		return
	case "GET":
		ctl.Read(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// Read handles GET
func (ctl *WhoAmIController) Read(c *models.Context) {
	if c.Auth.User == nil {
		c.RespondWithErrorMessage(
			"You must be authenticated to ask 'who am I?'",
			http.StatusUnauthorized,
		)
		return
	}

	c.RespondWithData(c.Auth.User)
}
