package controller

import (
	"github.com/microcosm-cc/registry/models"
)

// Registry holds the stores the handlers are wired to. It is built once in
// main and shared by every request.
type Registry struct {
	Views    *models.PackageViews
	Packages models.PackageStore
	Sessions *models.Sessions
}
