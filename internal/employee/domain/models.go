// Package domain holds the employee directory used for rollup grouping.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/sehatmu/amalan/pkg/db/pagination"
)

// Employee is one directory row. IDs come from the HR system and are
// opaque strings here.
type Employee struct {
	ID         string    `gorm:"primaryKey"`
	Name       string    `gorm:"type:text;not null"`
	UnitID     string    `gorm:"index;not null"`
	HospitalID string    `gorm:"index;not null"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (Employee) TableName() string { return "employees" }

// Directory resolves employee placement. Access policy is external: the
// caller passes an already-authorized employee-id set into reports, and
// the directory only resolves placement for those ids.
type Directory interface {
	Get(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, ids []string) ([]Employee, error)

	// ListPage pages through active employees ordered by id, optionally
	// filtered to one unit.
	ListPage(ctx context.Context, unitID string, p pagination.Pagination) ([]Employee, *pagination.PageInfo, error)
}

var ErrEmployeeNotFound = errors.New("employee_not_found")
