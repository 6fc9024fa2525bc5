// Package repository provides a small generic gorm store shared by the
// lookup-style domains.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository is a filter-by-example store over one model type.
type Repository[T any] interface {
	Find(ctx context.Context, filter *T) ([]*T, error)
	FindOne(ctx context.Context, filter *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Count(ctx context.Context, filter *T) (int64, error)
}

type store[T any] struct {
	db *gorm.DB
}

// ProvideStore builds a Repository for one model.
func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) Find(ctx context.Context, filter *T) ([]*T, error) {
	var result []*T
	err := r.db.WithContext(ctx).Where(filter).Find(&result).Error
	return result, err
}

func (r *store[T]) FindOne(ctx context.Context, filter *T) (*T, error) {
	var result T
	err := r.db.WithContext(ctx).Where(filter).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *store[T]) Create(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *store[T]) Save(ctx context.Context, resource *T) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *store[T]) Count(ctx context.Context, filter *T) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(filter).Count(&count).Error
	return count, err
}
