package controller

import (
	"net/http"

	"github.com/golang/glog"

	"github.com/microcosm-cc/registry/audit"
	"github.com/microcosm-cc/registry/models"
)

// SessionController ends sessions. Sessions are started by the login flow,
// which calls models.Sessions.SetSession directly.
type SessionController struct {
	Sessions *models.Sessions
}

// SessionHandler is the web handler
func (reg *Registry) SessionHandler(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w, reg.Sessions)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	ctl := SessionController{Sessions: reg.Sessions}

	switch c.GetHTTPMethod() {
	case "OPTIONS":
		c.RespondWithOptions([]string{"OPTIONS", "DELETE"})
		return
	case "DELETE":
		ctl.Delete(c)
	default:
		c.RespondWithStatus(http.StatusMethodNotAllowed)
		return
	}
}

// Delete handles DELETE, logging the user out
func (ctl *SessionController) Delete(c *models.Context) {
	if c.Auth.User == nil {
		// Already logged out
		clearSessionCookie(c)
		c.RespondWithOK()
		return
	}

	user := *c.Auth.User
	status, err := ctl.Sessions.DropSession(&user)
	if err != nil {
		glog.Errorf("%s: logout %s: %+v", c.RequestID, user.Name, err)
		c.RespondWithErrorDetail(err, status)
		return
	}

	audit.Logout(user.Name, c.StartTime, c.IP)

	clearSessionCookie(c)
	c.RespondWithOK()
}

func clearSessionCookie(c *models.Context) {
	http.SetCookie(c.ResponseWriter, &http.Cookie{
		Name:     models.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
