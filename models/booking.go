package models

import (
	"fmt"
	"strings"
	"time"
)

const BookingTable = "shareit_bookings"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

type Booking struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	ItemID    int64         `gorm:"index;not null" json:"itemId"`
	Item      *Item         `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	RenterID  int64         `gorm:"index;not null" json:"-"`
	Renter    *User         `gorm:"foreignKey:RenterID" json:"booker,omitempty"`
	OwnerID   int64         `gorm:"index;not null" json:"ownerId"` // denormalized from item
	StartTime time.Time     `gorm:"index;not null" json:"start"`
	EndTime   time.Time     `gorm:"index;not null" json:"end"`
	Status    BookingStatus `gorm:"size:20;not null;default:'WAITING'" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (Booking) TableName() string { return BookingTable }

// BookingForItem is the short booking summary attached to an item.
type BookingForItem struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (b *Booking) ForItem() *BookingForItem {
	return &BookingForItem{ID: b.ID, BookerID: b.RenterID, Start: b.StartTime, End: b.EndTime}
}

// BookingState is the read-side filter for booking listings, not a status
// stored on the row.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query parameter to a BookingState. Empty input
// defaults to ALL; anything unknown is rejected before it reaches a query.
func ParseBookingState(s string) (BookingState, error) {
	if s == "" {
		return StateAll, nil
	}
	switch st := BookingState(strings.ToUpper(s)); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown state: %s", s)
	}
}
