package models

import "time"

const ItemTable = "shareit_items"

type Item struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	Available   bool      `gorm:"not null;default:false" json:"available"`
	OwnerID     int64     `gorm:"index;not null" json:"ownerId"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
	RequestID   *int64    `gorm:"index" json:"requestId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Item) TableName() string { return ItemTable }

// ItemDetail is the client-facing item: the row plus booking summaries
// (owner view only) and comments.
type ItemDetail struct {
	Item
	LastBooking *BookingForItem `json:"lastBooking,omitempty"`
	NextBooking *BookingForItem `json:"nextBooking,omitempty"`
	Comments    []CommentDetail `json:"comments"`
}
