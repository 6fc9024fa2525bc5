// Package domain contains the monthly submission/review records that
// gate official KPI counting.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status of a monthly submission. approved is terminal; a rejected
// submission can be resubmitted.
type Status string

const (
	StatusNotSubmitted     Status = "not_submitted"
	StatusPendingMentor    Status = "pending_mentor"
	StatusPendingUnitHead  Status = "pending_unit_head"
	StatusApproved         Status = "approved"
	StatusRejectedMentor   Status = "rejected_mentor"
	StatusRejectedUnitHead Status = "rejected_unit_head"
)

// Submission is the approval record for one employee month.
type Submission struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	EmployeeID  string       `gorm:"index:idx_submission_month,unique;not null"`
	MonthKey    string       `gorm:"index:idx_submission_month,unique;not null"`
	Status      Status       `gorm:"type:text;not null"`
	SubmittedAt time.Time    `gorm:"not null"`
	ReviewedBy  string       `gorm:"type:text"`
	ReviewNote  string       `gorm:"type:text"`
	UpdatedAt   time.Time    `gorm:"not null"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (Submission) TableName() string { return "approval_submissions" }

// Service owns the submission lifecycle and the countability gate.
type Service interface {
	Submit(ctx context.Context, employeeID, monthKey string) (*Submission, error)
	ReviewMentor(ctx context.Context, employeeID, monthKey, reviewer string, approve bool, note string) (*Submission, error)
	ReviewUnitHead(ctx context.Context, employeeID, monthKey, reviewer string, approve bool, note string) (*Submission, error)
	Status(ctx context.Context, employeeID, monthKey string) (Status, error)

	// IsMonthCountable reports whether the month feeds official
	// aggregates: true iff the latest submission is approved. A missing
	// record counts as not approved.
	IsMonthCountable(ctx context.Context, employeeID, monthKey string) (bool, error)

	// CountableMonths filters monthKeys down to the approved ones.
	CountableMonths(ctx context.Context, employeeID string, monthKeys []string) (map[string]bool, error)
}

var (
	ErrInvalidEmployee   = errors.New("invalid_employee")
	ErrInvalidMonthKey   = errors.New("invalid_month_key")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrAlreadyApproved   = errors.New("submission_already_approved")
	ErrNotSubmitted      = errors.New("submission_not_found")
)
