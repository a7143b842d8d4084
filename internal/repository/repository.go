// Package repository handles all interactions with the database.
//
// It contains the raw SQL of every report and maps result columns onto
// model entities, keeping SQL away from the service layer.
package repository

import (
	"github.com/deppfellow/classroom/internal/app"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Classroom *ClassroomRepository
}

// NewRepositories constructs the repository container on the application's
// database handle.
func NewRepositories(a *app.App) *Repositories {
	return &Repositories{
		Classroom: NewClassroomRepository(a.DB.DB),
	}
}
