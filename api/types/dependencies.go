package types

import (
	"github.com/killallgit/marathon-api/internal/database"
	"github.com/killallgit/marathon-api/internal/services/catalog"
	"github.com/killallgit/marathon-api/internal/services/marathons"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/killallgit/marathon-api/pkg/config"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB     *database.DB
	Engine *marathons.Engine
	Store  storage.Store
	Config *config.Config

	// Catalog is nil when movie details are not looked up
	Catalog CatalogStats
}

// CatalogStats reports movie catalog client activity
type CatalogStats interface {
	Stats() catalog.Stats
}

// ClearDraftOnExit returns the configured policy for leaving marathon mode
func (d *Dependencies) ClearDraftOnExit() bool {
	if d == nil || d.Config == nil {
		return true
	}
	return d.Config.Marathon.ClearOnExit
}
