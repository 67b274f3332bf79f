package db

import (
	"context"

	"shareit/models"
)

func (r *Repo) CreateComment(ctx context.Context, cm *models.Comment) error {
	return r.DB.WithContext(ctx).Create(cm).Error
}

func (r *Repo) FindCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("item_id = ?", itemID).
		Order("created").
		Find(&comments).Error
	return comments, err
}
