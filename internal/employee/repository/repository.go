package repository

import (
	"context"

	"github.com/sehatmu/amalan/internal/employee/domain"
	"github.com/sehatmu/amalan/pkg/db/pagination"
	"github.com/sehatmu/amalan/pkg/repository"
	"gorm.io/gorm"
)

type Directory struct {
	db   *gorm.DB
	repo repository.Repository[domain.Employee]
}

func New(db *gorm.DB) domain.Directory {
	return &Directory{db: db, repo: repository.ProvideStore[domain.Employee](db)}
}

func (d *Directory) Get(ctx context.Context, id string) (*domain.Employee, error) {
	emp, err := d.repo.FindOne(ctx, &domain.Employee{ID: id})
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return emp, nil
}

func (d *Directory) List(ctx context.Context, ids []string) ([]domain.Employee, error) {
	var rows []domain.Employee
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (d *Directory) ListPage(ctx context.Context, unitID string, p pagination.Pagination) ([]domain.Employee, *pagination.PageInfo, error) {
	limit := p.Limit()

	q := d.db.WithContext(ctx).Where("active = ?", true).Order("id").Limit(limit + 1)
	if unitID != "" {
		q = q.Where("unit_id = ?", unitID)
	}
	if p.PageToken != "" {
		cursor, err := pagination.DecodeCursor(p.PageToken)
		if err != nil {
			return nil, nil, err
		}
		q = q.Where("id > ?", cursor.ID)
	}

	var rows []domain.Employee
	if err := q.Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	return pagination.BuildPageInfo(rows, limit, func(e domain.Employee) pagination.Cursor {
		return pagination.Cursor{ID: e.ID}
	})
}
