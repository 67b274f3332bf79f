package models

import "time"

const RequestTable = "shareit_requests"

// ItemRequest is a want-ad: a user asks for an item, owners may list items
// that answer it.
type ItemRequest struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"size:2000;not null" json:"description"`
	CreatorID   int64     `gorm:"index;not null" json:"-"`
	Creator     *User     `gorm:"foreignKey:CreatorID" json:"-"`
	Created     time.Time `gorm:"index;not null" json:"created"`
}

func (ItemRequest) TableName() string { return RequestTable }

type RequestDetail struct {
	ItemRequest
	Items []ItemDetail `json:"items"`
}
