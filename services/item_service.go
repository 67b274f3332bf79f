package services

import (
	"context"
	"time"

	"shareit/apperr"
	"shareit/cache"
	"shareit/db"
	"shareit/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo   *db.Repo
	search *cache.SearchCache
	logger *zerolog.Logger
}

func NewItemService(repo *db.Repo, search *cache.SearchCache, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, search: search, logger: logger}
}

type ItemCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, in ItemCreate) (*models.Item, error) {
	if isBlank(in.Name) {
		return nil, apperr.Validation("name must not be blank")
	}
	if isBlank(in.Description) {
		return nil, apperr.Validation("description must not be blank")
	}
	if in.Available == nil {
		return nil, apperr.Validation("available must be set")
	}
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	it := &models.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   *in.Available,
		OwnerID:     ownerID,
	}

	// Listing against a want-ad: the request must exist and must not be
	// the lister's own.
	if in.RequestID != nil {
		req, err := s.repo.FindRequestByID(ctx, *in.RequestID)
		if isNotFound(err) {
			return nil, apperr.NotFound("request with id = %d does not exist", *in.RequestID)
		}
		if err != nil {
			return nil, err
		}
		if req.CreatorID == ownerID {
			return nil, apperr.BadRequest("an item cannot answer its creator's own request")
		}
		it.RequestID = in.RequestID
	}

	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	s.logger.Info().Int64("item_id", it.ID).Int64("owner_id", ownerID).Msg("item created")
	return it, nil
}

// Get returns the item with comments; booking summaries are attached only
// when the caller is the owner.
func (s *ItemService) Get(ctx context.Context, itemID, callerID int64) (*models.ItemDetail, error) {
	it, err := s.repo.FindItemByID(ctx, itemID)
	if isNotFound(err) {
		return nil, apperr.NotFound("item with id = %d does not exist", itemID)
	}
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, it, it.OwnerID == callerID)
}

func (s *ItemService) ListOwned(ctx context.Context, ownerID int64) ([]models.ItemDetail, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.FindItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	details := make([]models.ItemDetail, 0, len(items))
	for i := range items {
		d, err := s.detail(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *ItemService) Update(ctx context.Context, callerID, itemID int64, in ItemPatch) (*models.ItemDetail, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	it, err := s.repo.FindItemByID(ctx, itemID)
	if isNotFound(err) {
		return nil, apperr.NotFound("item with id = %d does not exist", itemID)
	}
	if err != nil {
		return nil, err
	}
	if it.OwnerID != callerID {
		return nil, apperr.Forbidden("user with id = %d does not own item with id = %d", callerID, itemID)
	}

	if in.Name != nil && !isBlank(*in.Name) {
		it.Name = *in.Name
	}
	if in.Description != nil && !isBlank(*in.Description) {
		it.Description = *in.Description
	}
	if in.Available != nil {
		it.Available = *in.Available
	}

	if err := s.repo.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	s.invalidateSearch(ctx)
	s.logger.Info().Int64("item_id", it.ID).Msg("item updated")
	return s.detail(ctx, it, true)
}

// Search matches available items by substring. Results are served from the
// redis cache when fresh; cache failures degrade to a direct query.
func (s *ItemService) Search(ctx context.Context, callerID int64, text string) ([]models.Item, error) {
	if err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	if isBlank(text) {
		return []models.Item{}, nil
	}

	// The generation is observed once, before the query. If an item write
	// bumps it in between, the Set below lands under the old generation
	// and is never read.
	gen, genErr := s.search.Generation(ctx)
	if genErr != nil {
		s.logger.Warn().Err(genErr).Msg("search cache read failed")
	} else if cached, ok, err := s.search.Get(ctx, gen, text); err != nil {
		s.logger.Warn().Err(err).Msg("search cache read failed")
	} else if ok {
		return cached, nil
	}

	items, err := s.repo.SearchItems(ctx, text)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := s.search.Set(ctx, gen, text, items); err != nil {
			s.logger.Warn().Err(err).Msg("search cache write failed")
		}
	}
	return items, nil
}

// AddComment accepts a review only from a user whose approved booking of
// the item already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.CommentDetail, error) {
	if isBlank(text) {
		return nil, apperr.Validation("comment text must not be blank")
	}
	author, err := s.repo.FindUserByID(ctx, authorID)
	if isNotFound(err) {
		return nil, apperr.NotFound("user with id = %d does not exist", authorID)
	}
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("item with id = %d does not exist", itemID)
		}
		return nil, err
	}

	now := time.Now().UTC()
	ok, err := s.repo.HasCompletedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.BadRequest("cannot review an item that was not rented")
	}

	cm := &models.Comment{Text: text, ItemID: itemID, AuthorID: authorID, Created: now}
	if err := s.repo.CreateComment(ctx, cm); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return &models.CommentDetail{ID: cm.ID, Text: cm.Text, AuthorName: author.Name, Created: cm.Created}, nil
}

func (s *ItemService) requireUser(ctx context.Context, id int64) error {
	ok, err := s.repo.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user with id = %d does not exist", id)
	}
	return nil
}

func (s *ItemService) invalidateSearch(ctx context.Context) {
	if err := s.search.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("search cache invalidation failed")
	}
}

func (s *ItemService) detail(ctx context.Context, it *models.Item, withBookings bool) (*models.ItemDetail, error) {
	d := &models.ItemDetail{Item: *it, Comments: []models.CommentDetail{}}

	comments, err := s.repo.FindCommentsByItem(ctx, it.ID)
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

	if withBookings {
		now := time.Now().UTC()
		last, err := s.repo.LastBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		if last != nil {
			d.LastBooking = last.ForItem()
		}
		next, err := s.repo.NextBooking(ctx, it.ID, now)
		if err != nil {
			return nil, err
		}
		if next != nil {
			d.NextBooking = next.ForItem()
		}
	}
	return d, nil
}
