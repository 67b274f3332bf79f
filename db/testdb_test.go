package db

import (
	"fmt"
	"testing"
	"time"

	"shareit/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens an isolated in-memory sqlite database and migrates the
// schema into it.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedUser(t *testing.T, r *Repo, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email}
	require.NoError(t, r.DB.Create(u).Error)
	return u
}

func seedItem(t *testing.T, r *Repo, owner *models.User, name string, available bool) *models.Item {
	t.Helper()
	it := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: owner.ID}
	require.NoError(t, r.DB.Create(it).Error)
	return it
}

func seedBooking(t *testing.T, r *Repo, item *models.Item, renter *models.User, status models.BookingStatus, start, end time.Time) *models.Booking {
	t.Helper()
	b := &models.Booking{
		ItemID:    item.ID,
		RenterID:  renter.ID,
		OwnerID:   item.OwnerID,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	require.NoError(t, r.DB.Create(b).Error)
	return b
}
