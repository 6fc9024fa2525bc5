package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sehatmu/amalan/internal/approval/domain"
	"github.com/sehatmu/amalan/internal/clock"
	"github.com/sehatmu/amalan/pkg/db"
	"github.com/sehatmu/amalan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  repository.Repository[domain.Submission]
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("approval.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  repository.ProvideStore[domain.Submission](p.DB),
	}
}

// Submit creates a fresh submission or rewinds a rejected one back to
// the mentor queue. An approved month cannot be resubmitted.
func (s *Service) Submit(ctx context.Context, employeeID, monthKey string) (*domain.Submission, error) {
	employeeID, monthKey, err := validateKeys(employeeID, monthKey)
	if err != nil {
		return nil, err
	}

	existing, err := s.find(ctx, employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	if existing == nil {
		sub := &domain.Submission{
			ID:          s.genID.Generate(),
			EmployeeID:  employeeID,
			MonthKey:    monthKey,
			Status:      domain.StatusPendingMentor,
			SubmittedAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, sub); err != nil {
			// A concurrent submit for the same month loses the race on
			// the unique index; the winner's row is the answer.
			if db.IsDuplicateKeyErr(err) {
				return s.find(ctx, employeeID, monthKey)
			}
			return nil, err
		}
		return sub, nil
	}

	switch existing.Status {
	case domain.StatusApproved:
		return nil, domain.ErrAlreadyApproved
	case domain.StatusPendingMentor, domain.StatusPendingUnitHead:
		return existing, nil
	}

	existing.Status = domain.StatusPendingMentor
	existing.SubmittedAt = now
	existing.ReviewedBy = ""
	existing.ReviewNote = ""
	existing.UpdatedAt = now
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) ReviewMentor(ctx context.Context, employeeID, monthKey, reviewer string, approve bool, note string) (*domain.Submission, error) {
	next := domain.StatusPendingUnitHead
	if !approve {
		next = domain.StatusRejectedMentor
	}
	return s.review(ctx, employeeID, monthKey, reviewer, note, domain.StatusPendingMentor, next)
}

func (s *Service) ReviewUnitHead(ctx context.Context, employeeID, monthKey, reviewer string, approve bool, note string) (*domain.Submission, error) {
	next := domain.StatusApproved
	if !approve {
		next = domain.StatusRejectedUnitHead
	}
	return s.review(ctx, employeeID, monthKey, reviewer, note, domain.StatusPendingUnitHead, next)
}

func (s *Service) review(ctx context.Context, employeeID, monthKey, reviewer, note string, want, next domain.Status) (*domain.Submission, error) {
	employeeID, monthKey, err := validateKeys(employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	sub, err := s.find(ctx, employeeID, monthKey)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotSubmitted
	}
	if sub.Status != want {
		return nil, domain.ErrInvalidTransition
	}

	sub.Status = next
	sub.ReviewedBy = strings.TrimSpace(reviewer)
	sub.ReviewNote = strings.TrimSpace(note)
	sub.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("submission reviewed",
		zap.String("employee_id", employeeID),
		zap.String("month_key", monthKey),
		zap.String("status", string(next)),
	)
	return sub, nil
}

func (s *Service) Status(ctx context.Context, employeeID, monthKey string) (domain.Status, error) {
	employeeID, monthKey, err := validateKeys(employeeID, monthKey)
	if err != nil {
		return "", err
	}
	sub, err := s.find(ctx, employeeID, monthKey)
	if err != nil {
		return "", err
	}
	if sub == nil {
		return domain.StatusNotSubmitted, nil
	}
	return sub.Status, nil
}

func (s *Service) IsMonthCountable(ctx context.Context, employeeID, monthKey string) (bool, error) {
	status, err := s.Status(ctx, employeeID, monthKey)
	if err != nil {
		return false, err
	}
	return status == domain.StatusApproved, nil
}

func (s *Service) CountableMonths(ctx context.Context, employeeID string, monthKeys []string) (map[string]bool, error) {
	subs, err := s.repo.Find(ctx, &domain.Submission{EmployeeID: employeeID, Status: domain.StatusApproved})
	if err != nil {
		return nil, err
	}
	approved := make(map[string]bool, len(subs))
	for _, sub := range subs {
		approved[sub.MonthKey] = true
	}
	out := make(map[string]bool, len(monthKeys))
	for _, monthKey := range monthKeys {
		if approved[monthKey] {
			out[monthKey] = true
		}
	}
	return out, nil
}

func (s *Service) find(ctx context.Context, employeeID, monthKey string) (*domain.Submission, error) {
	return s.repo.FindOne(ctx, &domain.Submission{EmployeeID: employeeID, MonthKey: monthKey})
}

func validateKeys(employeeID, monthKey string) (string, string, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return "", "", domain.ErrInvalidEmployee
	}
	monthKey = strings.TrimSpace(monthKey)
	if _, err := time.Parse("2006-01", monthKey); err != nil {
		return "", "", domain.ErrInvalidMonthKey
	}
	return employeeID, monthKey, nil
}
