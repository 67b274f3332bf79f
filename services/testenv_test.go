package services

import (
	"fmt"
	"testing"
	"time"

	"shareit/cache"
	"shareit/db"
	"shareit/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *db.Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return db.NewRepo(conn)
}

func newSearchCache(t *testing.T) *cache.SearchCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewSearchCache(client, time.Minute)
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func seedUser(t *testing.T, r *db.Repo, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email}
	require.NoError(t, r.DB.Create(u).Error)
	return u
}

func seedItem(t *testing.T, r *db.Repo, owner *models.User, name string, available bool) *models.Item {
	t.Helper()
	it := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: owner.ID}
	require.NoError(t, r.DB.Create(it).Error)
	return it
}

func seedBooking(t *testing.T, r *db.Repo, item *models.Item, renter *models.User, status models.BookingStatus, start, end time.Time) *models.Booking {
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
