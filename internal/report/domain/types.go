// Package domain defines the report surfaces the engine exposes to
// dashboards and comparison views.
package domain

import (
	"context"
	"errors"

	catalogdomain "github.com/sehatmu/amalan/internal/catalog/domain"
	"github.com/sehatmu/amalan/internal/kpi"
	"github.com/sehatmu/amalan/internal/rollup"
)

// ActivityProgress is one catalog activity with its reconciled monthly
// progress. Achieved is the raw reconciled count; Percentage caps it
// against the target.
type ActivityProgress struct {
	ActivityID string                 `json:"activity_id"`
	Title      string                 `json:"title"`
	Category   catalogdomain.Category `json:"category"`
	Achieved   int                    `json:"achieved"`
	Target     int                    `json:"target"`
	Percentage int                    `json:"percentage"`
	Days       []string               `json:"days,omitempty"`
}

// PersonalProgress is the ungated per-employee month view. It is always
// visible to the employee regardless of approval state.
type PersonalProgress struct {
	EmployeeID    string             `json:"employee_id"`
	MonthKey      string             `json:"month_key"`
	Activities    []ActivityProgress `json:"activities"`
	Result        kpi.Result         `json:"result"`
	FailedSources []string           `json:"failed_sources,omitempty"`
	PartialData   bool               `json:"partial_data"`
}

// OfficialKpi is the approval-gated yearly score.
type OfficialKpi struct {
	EmployeeID    string     `json:"employee_id"`
	Year          int        `json:"year"`
	Result        kpi.Result `json:"result"`
	FailedSources []string   `json:"failed_sources,omitempty"`
	PartialData   bool       `json:"partial_data"`
}

// RollupReport is the cross-employee comparison view.
type RollupReport struct {
	Period        string        `json:"period"`
	GroupBy       rollup.GroupBy `json:"group_by"`
	Rows          []rollup.Row  `json:"rows"`
	FailedSources []string      `json:"failed_sources,omitempty"`
	PartialData   bool          `json:"partial_data"`
}

// Service is the engine's caller-facing boundary. The employee-id sets
// passed in are assumed to be authorized already; access policy is an
// external gate.
type Service interface {
	PersonalProgress(ctx context.Context, employeeID, monthKey string) (*PersonalProgress, error)
	OfficialKpi(ctx context.Context, employeeID string, year int) (*OfficialKpi, error)
	OrganizationalRollup(ctx context.Context, employeeIDs []string, groupBy rollup.GroupBy, period string) (*RollupReport, error)
}

var (
	ErrInvalidEmployee = errors.New("invalid_employee")
	ErrInvalidMonthKey = errors.New("invalid_month_key")
	ErrInvalidYear     = errors.New("invalid_year")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidGroupBy  = errors.New("invalid_group_by")
	ErrNoEmployees     = errors.New("no_employees_requested")
)
