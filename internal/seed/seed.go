// Package seed bootstraps a demo employee directory for local and
// self-hosted environments.
package seed

import (
	"context"
	"errors"
	"time"

	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	"gorm.io/gorm"
)

// EnsureDemoDirectory inserts a small hospital/unit/employee set when
// the directory is empty, so the reports have something to resolve
// against out of the box. Existing rows are never touched.
func EnsureDemoDirectory(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&employeedomain.Employee{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		employees := []employeedomain.Employee{
			{ID: "EMP-0001", Name: "Aisyah Rahmawati", UnitID: "igd", HospitalID: "rs-pku-01", Active: true},
			{ID: "EMP-0002", Name: "Budi Santoso", UnitID: "igd", HospitalID: "rs-pku-01", Active: true},
			{ID: "EMP-0003", Name: "Citra Maulida", UnitID: "farmasi", HospitalID: "rs-pku-01", Active: true},
			{ID: "EMP-0004", Name: "Dimas Prasetyo", UnitID: "farmasi", HospitalID: "rs-pku-02", Active: true},
			{ID: "EMP-0005", Name: "Eka Fitriani", UnitID: "rawat-inap", HospitalID: "rs-pku-02", Active: true},
		}
		for i := range employees {
			employees[i].CreatedAt = now
			employees[i].UpdatedAt = now
		}
		return tx.Create(&employees).Error
	})
}
