// Package service contains the business logic.
//
// It sits between the handler and repository layers. It streams joined
// rows from the repository through the aggregator and returns the grouped
// entities of each report.
package service

import (
	"github.com/deppfellow/classroom/internal/app"
	"github.com/deppfellow/classroom/internal/repository"
)

// Services groups the service layer.
type Services struct {
	Reports *ReportService
}

// NewServices builds every service over repos.
func NewServices(a *app.App, repos *repository.Repositories) *Services {
	return &Services{
		Reports: NewReportService(a, repos.Classroom),
	}
}
