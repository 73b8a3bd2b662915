package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store/model"
	"gorm.io/gorm"
)

type Application interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	ListForJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) (model.ApplicationList, error)
	ListForEmployer(ctx context.Context, employerID uuid.UUID) (model.ApplicationList, error)
	Create(ctx context.Context, application model.Application) (*model.Application, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.Application, error)
	MarkDeleted(ctx context.Context, id uuid.UUID, role string) (destroyed bool, err error)
	InitialMigration(ctx context.Context) error
}

type ApplicationStore struct {
	db *gorm.DB
}

var _ Application = (*ApplicationStore)(nil)

func NewApplicationStore(db *gorm.DB) Application {
	return &ApplicationStore{db: db}
}

func (s *ApplicationStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.Application{})
}

func (s *ApplicationStore) Get(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	application := &model.Application{}

	if err := s.getDB(ctx).WithContext(ctx).First(application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return application, nil
}

// ListForJobSeeker lists the job seeker's applications, excluding the ones the
// job seeker has hidden for themself.
func (s *ApplicationStore) ListForJobSeeker(ctx context.Context, jobSeekerID uuid.UUID) (model.ApplicationList, error) {
	var applications model.ApplicationList

	err := s.getDB(ctx).WithContext(ctx).
		Where("job_seeker_id = ? AND deleted_by_job_seeker = ?", jobSeekerID, false).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

// ListForEmployer lists the employer's applications, excluding the ones the
// employer has hidden for themself.
func (s *ApplicationStore) ListForEmployer(ctx context.Context, employerID uuid.UUID) (model.ApplicationList, error) {
	var applications model.ApplicationList

	err := s.getDB(ctx).WithContext(ctx).
		Where("employer_id = ? AND deleted_by_employer = ?", employerID, false).
		Find(&applications).Error
	if err != nil {
		return nil, err
	}

	return applications, nil
}

// Create creates an application. A live application for the same
// (job seeker, job) pair makes it fail with ErrDuplicateKey.
func (s *ApplicationStore) Create(ctx context.Context, application model.Application) (*model.Application, error) {
	if err := s.getDB(ctx).WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &application, nil
}

func (s *ApplicationStore) SetStatus(ctx context.Context, id uuid.UUID, status string) (*model.Application, error) {
	application := &model.Application{}

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(application, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return err
		}

		application.Status = status
		return tx.Model(application).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	return application, nil
}

// MarkDeleted sets the delete flag belonging to role. When both flags end up
// true the row is hard deleted within the same transaction. The requester's
// flag is written with a single-column UPDATE before the flags are read back,
// so two parties deleting concurrently serialize on the row lock and the
// second writer always observes the first one's flag before deciding.
func (s *ApplicationStore) MarkDeleted(ctx context.Context, id uuid.UUID, role string) (bool, error) {
	var column string
	switch role {
	case model.RoleJobSeeker:
		column = "deleted_by_job_seeker"
	case model.RoleEmployer:
		column = "deleted_by_employer"
	default:
		return false, fmt.Errorf("unknown role %q", role)
	}

	var destroyed bool

	err := s.getDB(ctx).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Application{}).Where("id = ?", id).Update(column, true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		application := &model.Application{}
		if err := tx.First(application, "id = ?", id).Error; err != nil {
			return err
		}

		if application.DeletedByJobSeeker && application.DeletedByEmployer {
			destroyed = true
			return tx.Delete(application).Error
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return destroyed, nil
}

func (s *ApplicationStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
