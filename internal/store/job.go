package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error)
	ListUnnotified(ctx context.Context) (model.JobList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Update(ctx context.Context, job model.Job) (*model.Job, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	InitialMigration(ctx context.Context) error
}

type JobStore struct {
	db *gorm.DB
}

var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) InitialMigration(ctx context.Context) error {
	return s.getDB(ctx).AutoMigrate(&model.Job{})
}

// List lists the jobs matching the filter.
func (s *JobStore) List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error) {
	var jobs model.JobList
	tx := s.getDB(ctx)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if err := tx.Model(&jobs).Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

// ListUnnotified returns the jobs the matching cycle has not yet processed.
func (s *JobStore) ListUnnotified(ctx context.Context) (model.JobList, error) {
	return s.List(ctx, NewJobQueryFilter().ByNotified(false))
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job := &model.Job{}

	if err := s.getDB(ctx).WithContext(ctx).First(job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return job, nil
}

func (s *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := s.getDB(ctx).WithContext(ctx).Create(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, err
	}

	return &job, nil
}

// Update updates a job's content fields. The notified flag is deliberately
// excluded; MarkNotified is the only writer for it.
func (s *JobStore) Update(ctx context.Context, job model.Job) (*model.Job, error) {
	if err := s.getDB(ctx).WithContext(ctx).First(&model.Job{}, "id = ?", job.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	tx := s.getDB(ctx).WithContext(ctx).Model(&model.Job{ID: job.ID}).
		Select("title", "organization", "location", "salary_from", "salary_to", "niche", "valid_through").
		Updates(&job)
	if tx.Error != nil {
		return nil, tx.Error
	}

	return &job, nil
}

// MarkNotified flips the notified flag to true. The flag is monotonic: there
// is no store operation that resets it.
func (s *JobStore) MarkNotified(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).WithContext(ctx).Model(&model.Job{}).Where("id = ?", id).Update("notified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *JobStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).WithContext(ctx).Delete(&model.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
