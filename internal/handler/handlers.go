package handler

import (
	"github.com/deppfellow/classroom/internal/app"
	"github.com/deppfellow/classroom/internal/service"
)

// Handlers is a container that groups all handlers, so the command line
// passes one object around instead of many.
type Handlers struct {
	Reports *ReportHandler // Reports runs reports by name.
	Health  *HealthHandler // Health checks the database and schema.
}

// NewHandlers constructs the handler container.
func NewHandlers(a *app.App, services *service.Services) *Handlers {
	return &Handlers{
		Reports: NewReportHandler(a, services.Reports),
		Health:  NewHealthHandler(a),
	}
}
