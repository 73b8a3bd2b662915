package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/internal/store/model"
)

type UserService struct {
	store store.Store
}

func NewUserService(store store.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a user. Job seekers must fill all four niche slots and
// each slot must be unique; this is the only place the 4-tuple is validated,
// the matcher trusts it downstream.
func (s *UserService) Register(ctx context.Context, user model.User) (*model.User, error) {
	if user.Role != model.RoleJobSeeker && user.Role != model.RoleEmployer {
		return nil, NewErrForbidden(fmt.Sprintf("unknown role %q", user.Role))
	}

	if user.Role == model.RoleJobSeeker {
		if err := validateNiches(user.Niches()); err != nil {
			return nil, err
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	result, err := s.store.User().Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrForbidden(fmt.Sprintf("email %s is already registered", user.Email))
		}
		return nil, err
	}

	return result, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.store.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotFound(id)
		}
		return nil, err
	}

	return user, nil
}

func validateNiches(niches [4]string) error {
	seen := make(map[string]struct{}, len(niches))
	for i, niche := range niches {
		if niche == "" {
			return NewErrInvalidNiches(fmt.Sprintf("niche slot %d is empty", i+1))
		}
		if _, ok := seen[niche]; ok {
			return NewErrInvalidNiches(fmt.Sprintf("niche %q appears more than once", niche))
		}
		seen[niche] = struct{}{}
	}
	return nil
}
