package db

import (
	"context"
	"strings"

	"shareit/models"
)

func (r *Repo) CreateItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *Repo) FindItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var it models.Item
	if err := r.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) SaveItem(ctx context.Context, it *models.Item) error {
	return r.DB.WithContext(ctx).Save(it).Error
}

func (r *Repo) FindItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&items).Error
	return items, err
}

// SearchItems matches available items whose name or description contains
// text, case-insensitively.
func (r *Repo) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	like := "%" + strings.ToLower(text) + "%"
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("available = ? AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", true, like, like).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *Repo) FindItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error) {
	var items []models.Item
	err := r.DB.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id").
		Find(&items).Error
	return items, err
}
