package db

import (
	"context"
	"errors"
	"time"

	"shareit/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrItemUnavailable  = errors.New("item is not available")
	ErrWindowTaken      = errors.New("time window is already booked")
	ErrAlreadyProcessed = errors.New("booking already processed")
	ErrNotOwner         = errors.New("caller does not own the item")
)

var blockingStatuses = []models.BookingStatus{models.StatusWaiting, models.StatusApproved}

// forUpdate takes a row lock on postgres. sqlite has no FOR UPDATE and
// serializes writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateBooking persists a WAITING booking after re-checking availability
// and window overlap under a row lock on the item, so two concurrent
// requests for the same window cannot both pass the check.
func (r *Repo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := forUpdate(tx).First(&it, "id = ?", b.ItemID).Error; err != nil {
			return err
		}
		if !it.Available {
			return ErrItemUnavailable
		}

		var n int64
		if err := tx.Model(&models.Booking{}).
			Where("item_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.ItemID, blockingStatuses, b.EndTime, b.StartTime).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrWindowTaken
		}

		b.OwnerID = it.OwnerID
		b.Status = models.StatusWaiting
		return tx.Create(b).Error
	})
}

// DecideBooking moves a WAITING booking to APPROVED or REJECTED. The guard
// order matters for the HTTP contract: terminal-state check before the
// owner check.
func (r *Repo) DecideBooking(ctx context.Context, bookingID, callerID int64, approve bool) (*models.Booking, error) {
	var b models.Booking
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&b, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if b.Status != models.StatusWaiting {
			return ErrAlreadyProcessed
		}
		if b.OwnerID != callerID {
			return ErrNotOwner
		}
		if approve {
			b.Status = models.StatusApproved
		} else {
			b.Status = models.StatusRejected
		}
		return tx.Save(&b).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindBookingByID(ctx, b.ID)
}

func (r *Repo) FindBookingByID(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	if err := r.DB.WithContext(ctx).
		Preload("Item").Preload("Renter").
		First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookings resolves one of the six state filters for a renter or an
// owner. The filters are mutually exclusive read-side predicates; the row
// itself only ever holds WAITING/APPROVED/REJECTED.
func (r *Repo) ListBookings(ctx context.Context, userID int64, owner bool, state models.BookingState, now time.Time) ([]models.Booking, error) {
	q := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Preload("Item").Preload("Renter").
		Order("id DESC")

	if owner {
		q = q.Where("owner_id = ?", userID)
	} else {
		q = q.Where("renter_id = ?", userID)
	}

	switch state {
	case models.StateAll:
		// no extra predicate
	case models.StateCurrent:
		q = q.Where("start_time <= ? AND end_time >= ?", now, now)
	case models.StatePast:
		q = q.Where("end_time < ? AND status = ?", now, models.StatusApproved)
	case models.StateFuture:
		q = q.Where("start_time > ? AND status IN ?", now, blockingStatuses)
	case models.StateWaiting:
		q = q.Where("status = ?", models.StatusWaiting)
	case models.StateRejected:
		q = q.Where("status = ?", models.StatusRejected)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// LastBooking returns the most recent approved booking started before now,
// or nil when there is none.
func (r *Repo) LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	var bookings []models.Booking
	err := r.DB.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_time < ?", itemID, models.StatusApproved, now).
		Order("start_time DESC").
		Limit(1).
		Find(&bookings).Error
	if err != nil || len(bookings) == 0 {
		return nil, err
	}
	return &bookings[0], nil
}

// NextBooking returns the earliest approved booking starting after now, or
// nil when there is none.
func (r *Repo) NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	var bookings []models.Booking
	err := r.DB.WithContext(ctx).
		Where("item_id = ? AND status = ? AND start_time > ?", itemID, models.StatusApproved, now).
		Order("start_time ASC").
		Limit(1).
		Find(&bookings).Error
	if err != nil || len(bookings) == 0 {
		return nil, err
	}
	return &bookings[0], nil
}

// HasCompletedBooking reports whether the user has an approved booking of
// the item that ended before the given moment. Gates comment creation.
func (r *Repo) HasCompletedBooking(ctx context.Context, userID, itemID int64, before time.Time) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("renter_id = ? AND item_id = ? AND status = ? AND end_time < ?",
			userID, itemID, models.StatusApproved, before).
		Count(&n).Error
	return n > 0, err
}
