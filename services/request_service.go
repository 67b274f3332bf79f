package services

import (
	"context"
	"time"

	"shareit/apperr"
	"shareit/db"
	"shareit/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   *db.Repo
	logger *zerolog.Logger
}

func NewRequestService(repo *db.Repo, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

type RequestCreate struct {
	Description string `json:"description"`
}

func (s *RequestService) Create(ctx context.Context, creatorID int64, in RequestCreate) (*models.ItemRequest, error) {
	if isBlank(in.Description) {
		return nil, apperr.Validation("description must not be blank")
	}
	if err := s.requireUser(ctx, creatorID); err != nil {
		return nil, err
	}
	req := &models.ItemRequest{
		Description: in.Description,
		CreatorID:   creatorID,
		Created:     time.Now().UTC(),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", req.ID).Int64("creator_id", creatorID).Msg("request created")
	return req, nil
}

func (s *RequestService) ListOwn(ctx context.Context, userID int64) ([]models.RequestDetail, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.FindRequestsByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, reqs)
}

// ListOthers pages through other users' want-ads, newest first. A page past
// the end is just empty.
func (s *RequestService) ListOthers(ctx context.Context, userID, from, size int64) ([]models.RequestDetail, error) {
	if from < 0 {
		return nil, apperr.Validation("from must not be negative")
	}
	if size <= 0 {
		return nil, apperr.Validation("size must be positive")
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	reqs, err := s.repo.FindRequestsFromOthers(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, reqs)
}

func (s *RequestService) Get(ctx context.Context, requestID int64) (*models.RequestDetail, error) {
	req, err := s.repo.FindRequestByID(ctx, requestID)
	if isNotFound(err) {
		return nil, apperr.NotFound("request with id = %d does not exist", requestID)
	}
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, []models.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// details attaches to each request the items listed against it, and to
// each such item its comments.
func (s *RequestService) details(ctx context.Context, reqs []models.ItemRequest) ([]models.RequestDetail, error) {
	out := make([]models.RequestDetail, 0, len(reqs))
	for _, req := range reqs {
		items, err := s.repo.FindItemsByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		itemDetails := make([]models.ItemDetail, 0, len(items))
		for i := range items {
			d := models.ItemDetail{Item: items[i], Comments: []models.CommentDetail{}}
			comments, err := s.repo.FindCommentsByItem(ctx, items[i].ID)
			if err != nil {
				return nil, err
			}
			for _, cm := range comments {
				name := ""
				if cm.Author != nil {
					name = cm.Author.Name
				}
				d.Comments = append(d.Comments, models.CommentDetail{
					ID: cm.ID, Text: cm.Text, AuthorName: name, Created: cm.Created,
				})
			}
			itemDetails = append(itemDetails, d)
		}
		out = append(out, models.RequestDetail{ItemRequest: req, Items: itemDetails})
	}
	return out, nil
}

func (s *RequestService) requireUser(ctx context.Context, id int64) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user with id = %d does not exist", id)
	}
	return nil
}
