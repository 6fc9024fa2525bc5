// Package repository implements the event data provider on gorm.
package repository

import (
	"context"

	"github.com/sehatmu/amalan/internal/event/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) domain.Provider {
	return &Repository{db: db, log: log.Named("event.repository")}
}

func (r *Repository) FetchPrayerEvents(ctx context.Context, employeeIDs []string, dr domain.DateRange) ([]domain.PrayerEvent, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.PrayerEvent
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("occurred_at >= ? AND occurred_at < ?", dr.From, dr.To).
		Order("occurred_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FetchGroupSessionEvents(ctx context.Context, employeeIDs []string, dr domain.DateRange) ([]domain.GroupSessionEvent, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.GroupSessionEvent
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("session_date >= ? AND session_date < ?", dr.From, dr.To).
		Order("session_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FetchScheduledActivityEvents(ctx context.Context, employeeIDs []string, dr domain.DateRange) ([]domain.ScheduledActivityEvent, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.ScheduledActivityEvent
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("event_date >= ? AND event_date < ?", dr.From, dr.To).
		Order("event_date ASC").
		Find(&rows).Error
	return rows, err
}

// FetchGroupReadingSessions returns whole sessions for the window; the
// caller filters rosters to the requested employees.
func (r *Repository) FetchGroupReadingSessions(ctx context.Context, dr domain.DateRange) ([]domain.GroupReadingSession, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.GroupReadingSession
	err := r.db.WithContext(ctx).
		Where("session_date >= ? AND session_date < ?", dr.From, dr.To).
		Order("session_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FetchApprovedExceptions(ctx context.Context, employeeIDs []string, dr domain.DateRange) ([]domain.ExceptionRequest, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.ExceptionRequest
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("status = ?", domain.ExceptionStatusApproved).
		Where("event_date >= ? AND event_date < ?", dr.From, dr.To).
		Order("event_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FetchManualCounters(ctx context.Context, employeeIDs []string, monthKeys []string) ([]domain.ManualCounterRecord, error) {
	var rows []domain.ManualCounterRecord
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("month_key IN ?", monthKeys).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) FetchReadingLogs(ctx context.Context, employeeIDs []string, dr domain.DateRange) ([]domain.ReadingLogEntry, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	var rows []domain.ReadingLogEntry
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Where("read_date >= ? AND read_date < ?", dr.From, dr.To).
		Order("read_date ASC").
		Find(&rows).Error
	return rows, err
}

func validateRange(dr domain.DateRange) error {
	if dr.From.IsZero() || dr.To.IsZero() || !dr.From.Before(dr.To) {
		return domain.ErrInvalidRange
	}
	return nil
}
