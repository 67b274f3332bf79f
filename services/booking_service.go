package services

import (
	"context"
	"errors"
	"time"

	"shareit/apperr"
	"shareit/db"
	"shareit/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo   *db.Repo
	logger *zerolog.Logger
}

func NewBookingService(repo *db.Repo, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, logger: logger}
}

type BookingCreate struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (s *BookingService) Create(ctx context.Context, renterID int64, in BookingCreate) (*models.Booking, error) {
	if in.Start == nil || in.End == nil {
		return nil, apperr.Validation("start and end are required")
	}
	if !in.Start.Before(*in.End) {
		return nil, apperr.Validation("start must be before end")
	}
	if err := s.requireUser(ctx, renterID); err != nil {
		return nil, err
	}

	it, err := s.repo.FindItemByID(ctx, in.ItemID)
	if isNotFound(err) {
		return nil, apperr.NotFound("item with id = %d does not exist", in.ItemID)
	}
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, apperr.BadRequest("item with id = %d is not available for rent", in.ItemID)
	}
	// Self-booking hides as absence rather than 403; see DESIGN.md.
	if it.OwnerID == renterID {
		return nil, apperr.NotFound("owner cannot rent their own item")
	}

	b := &models.Booking{
		ItemID:    in.ItemID,
		RenterID:  renterID,
		StartTime: in.Start.UTC(),
		EndTime:   in.End.UTC(),
	}
	if err := s.repo.CreateBooking(ctx, b); err != nil {
		switch {
		case errors.Is(err, db.ErrItemUnavailable):
			return nil, apperr.BadRequest("item with id = %d is not available for rent", in.ItemID)
		case errors.Is(err, db.ErrWindowTaken):
			return nil, apperr.BadRequest("item with id = %d is not available for rent at this time", in.ItemID)
		case isNotFound(err):
			return nil, apperr.NotFound("item with id = %d does not exist", in.ItemID)
		default:
			return nil, err
		}
	}

	s.logger.Info().Int64("booking_id", b.ID).Int64("item_id", b.ItemID).
		Int64("renter_id", renterID).Msg("booking created")
	return s.repo.FindBookingByID(ctx, b.ID)
}

func (s *BookingService) Decide(ctx context.Context, callerID, bookingID int64, approve bool) (*models.Booking, error) {
	b, err := s.repo.DecideBooking(ctx, bookingID, callerID, approve)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, apperr.NotFound("booking with id = %d does not exist", bookingID)
		case errors.Is(err, db.ErrAlreadyProcessed):
			return nil, apperr.BadRequest("booking with id = %d is already processed", bookingID)
		case errors.Is(err, db.ErrNotOwner):
			return nil, apperr.NotFound("user with id = %d has no access", callerID)
		default:
			return nil, err
		}
	}
	s.logger.Info().Int64("booking_id", b.ID).Bool("approved", approve).Msg("booking decided")
	return b, nil
}

// Get returns the booking to its renter or the item's owner; anyone else
// sees a 404.
func (s *BookingService) Get(ctx context.Context, callerID, bookingID int64) (*models.Booking, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	b, err := s.repo.FindBookingByID(ctx, bookingID)
	if isNotFound(err) {
		return nil, apperr.NotFound("booking with id = %d does not exist", bookingID)
	}
	if err != nil {
		return nil, err
	}
	if b.RenterID != callerID && b.OwnerID != callerID {
		return nil, apperr.NotFound("user with id = %d has no access", callerID)
	}
	return b, nil
}

// List resolves a state filter for either side of the rental.
func (s *BookingService) List(ctx context.Context, userID int64, owner bool, state models.BookingState) ([]models.Booking, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListBookings(ctx, userID, owner, state, time.Now().UTC())
}

func (s *BookingService) requireUser(ctx context.Context, id int64) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user with id = %d does not exist", id)
	}
	return nil
}
