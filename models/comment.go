package models

import "time"

const CommentTable = "shareit_comments"

type Comment struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"size:2000;not null" json:"text"`
	ItemID   int64     `gorm:"index;not null" json:"itemId"`
	Item     *Item     `gorm:"foreignKey:ItemID" json:"-"`
	AuthorID int64     `gorm:"index;not null" json:"-"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"-"`
	Created  time.Time `gorm:"not null" json:"created"`
}

func (Comment) TableName() string { return CommentTable }

type CommentDetail struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
