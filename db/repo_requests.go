package db

import (
	"context"

	"shareit/models"
)

func (r *Repo) CreateRequest(ctx context.Context, req *models.ItemRequest) error {
	return r.DB.WithContext(ctx).Create(req).Error
}

func (r *Repo) FindRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var req models.ItemRequest
	if err := r.DB.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *Repo) FindRequestsByCreator(ctx context.Context, creatorID int64) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := r.DB.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created DESC").
		Find(&reqs).Error
	return reqs, err
}

// FindRequestsFromOthers pages through other users' want-ads, newest first.
func (r *Repo) FindRequestsFromOthers(ctx context.Context, userID, from, size int64) ([]models.ItemRequest, error) {
	var reqs []models.ItemRequest
	err := r.DB.WithContext(ctx).
		Where("creator_id <> ?", userID).
		Order("created DESC").
		Offset(int(from)).
		Limit(int(size)).
		Find(&reqs).Error
	return reqs, err
}
