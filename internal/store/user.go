package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store/model"
	"gorm.io/gorm"
)

type User interface {
	ListByRole(ctx context.Context, role string) (model.UserList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user model.User) (*model.User, error)
	InitialMigration(ctx context.Context) error
}

type UserStore struct {
	db *gorm.DB
}

var _ User = (*UserStore)(nil)

func NewUserStore(db *gorm.DB) User {
	return &UserStore{db: db}
}

func (s *UserStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.User{})
}

// ListByRole lists all the users with the given role.
func (s *UserStore) ListByRole(ctx context.Context, role string) (model.UserList, error) {
	var users model.UserList

	if err := s.getDB(ctx).WithContext(ctx).Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{}

	if err := s.getDB(ctx).WithContext(ctx).First(user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *UserStore) Create(ctx context.Context, user model.User) (*model.User, error) {
	if err := s.getDB(ctx).WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
