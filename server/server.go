package server

import (
	"fmt"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"github.com/microcosm-cc/registry/controller"
)

// NewRouter wires the handlers to their routes
func NewRouter(reg *controller.Registry) *mux.Router {
	r := mux.NewRouter()

	for _, rt := range routes(reg) {
		r.HandleFunc(rt.path, rt.handler)
	}
	r.NotFoundHandler = http.HandlerFunc(controller.NotFoundHandler)

	return r
}

// StartServer owns the http process
func StartServer(port int64, reg *controller.Registry) {
	http.Handle("/", NewRouter(reg))

	// Start the HTTP server
	glog.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
}
