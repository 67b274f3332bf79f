package db

import (
	"fmt"

	"shareit/config"
	"shareit/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and runs migrations.
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	); err != nil {
		return err
	}

	// Partial index over blocking bookings keeps the overlap scan narrow.
	// Postgres only; sqlite (tests) runs fine on the plain indexes.
	if conn.Dialector.Name() == "postgres" {
		if err := conn.Exec(fmt.Sprintf(`
		  CREATE INDEX IF NOT EXISTS %s_blocking_window
		  ON %s (item_id, start_time, end_time)
		  WHERE status IN ('WAITING', 'APPROVED');
		`, models.BookingTable, models.BookingTable)).Error; err != nil {
			return err
		}
	}
	return nil
}
