package migration

import (
	"github.com/sehatmu/amalan/internal/config"
	"github.com/sehatmu/amalan/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"

	approvaldomain "github.com/sehatmu/amalan/internal/approval/domain"
	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&employeedomain.Employee{},
				&eventdomain.PrayerEvent{},
				&eventdomain.GroupSessionEvent{},
				&eventdomain.ScheduledActivityEvent{},
				&eventdomain.GroupReadingSession{},
				&eventdomain.ExceptionRequest{},
				&eventdomain.ManualCounterRecord{},
				&eventdomain.ReadingLogEntry{},
				&approvaldomain.Submission{},
			); err != nil {
				return err
			}
		}

		if !cfg.IsProduction() {
			return seed.EnsureDemoDirectory(conn)
		}
		return nil
	}),
)
