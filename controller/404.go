package controller

import (
	"net/http"

	"github.com/golang/glog"

	"github.com/microcosm-cc/registry/models"
)

// NotFoundHandler answers every unrouted request
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	c, status, err := models.MakeContext(r, w, nil)
	if err != nil {
		c.RespondWithErrorDetail(err, status)
		return
	}

	if glog.V(2) {
		glog.Infof("%s: no route for %s %s", c.RequestID, r.Method, r.URL.Path)
	}

	c.RespondWithNotFound()
}
