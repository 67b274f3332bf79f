package services

import (
	"context"

	"shareit/apperr"
	"shareit/db"
	"shareit/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   *db.Repo
	logger *zerolog.Logger
}

func NewUserService(repo *db.Repo, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

type UserCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if isNotFound(err) {
		return nil, apperr.NotFound("user with id = %d does not exist", id)
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) Create(ctx context.Context, in UserCreate) (*models.User, error) {
	if isBlank(in.Name) {
		return nil, apperr.Validation("name must not be blank")
	}
	if !isEmail(in.Email) {
		return nil, apperr.Validation("email %q is not a valid address", in.Email)
	}
	u := &models.User{Name: in.Name, Email: in.Email}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("user with email %s already exists", in.Email)
		}
		return nil, err
	}
	s.logger.Info().Int64("user_id", u.ID).Msg("user created")
	return u, nil
}

// Update overwrites only fields that arrive non-blank; a malformed email in
// the patch silently keeps the old address.
func (s *UserService) Update(ctx context.Context, id int64, in UserPatch) (*models.User, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if isNotFound(err) {
		return nil, apperr.NotFound("user with id = %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil && !isBlank(*in.Name) {
		u.Name = *in.Name
	}
	if in.Email != nil && !isBlank(*in.Email) && isEmail(*in.Email) && *in.Email != u.Email {
		taken, err := s.repo.EmailTaken(ctx, *in.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("user with email %s already exists", *in.Email)
		}
		u.Email = *in.Email
	}

	if err := s.repo.SaveUser(ctx, u); err != nil {
		if isDuplicate(err) {
			return nil, apperr.Conflict("user with email %s already exists", u.Email)
		}
		return nil, err
	}
	s.logger.Info().Int64("user_id", u.ID).Msg("user updated")
	return u, nil
}

// Delete removes the user and returns the deleted row.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.FindUserByID(ctx, id)
	if isNotFound(err) {
		return nil, apperr.NotFound("user with id = %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteUserByID(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return u, nil
}
