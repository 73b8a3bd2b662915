package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/internal/store/model"
)

type JobService struct {
	store store.Store
}

func NewJobService(store store.Store) *JobService {
	return &JobService{store: store}
}

// PostJob creates a job on behalf of an employer. The job starts unnotified
// and is picked up by the next matching cycle.
func (s *JobService) PostJob(ctx context.Context, employerID uuid.UUID, job model.Job) (*model.Job, error) {
	user, err := s.store.User().Get(ctx, employerID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotFound(employerID)
		}
		return nil, err
	}

	if user.Role != model.RoleEmployer {
		return nil, NewErrForbidden(fmt.Sprintf("user %s is not an employer", employerID))
	}

	job.ID = uuid.New()
	job.PostedBy = employerID
	job.Notified = false

	return s.store.Job().Create(ctx, job)
}

// UpdateJob updates a job's content fields. Ownership is required; the
// notified flag is out of reach, the store omits it on update.
func (s *JobService) UpdateJob(ctx context.Context, employerID uuid.UUID, job model.Job) (*model.Job, error) {
	existing, err := s.store.Job().Get(ctx, job.ID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(job.ID)
		}
		return nil, err
	}

	if existing.PostedBy != employerID {
		return nil, NewErrForbidden(fmt.Sprintf("employer %s does not own job %s", employerID, job.ID))
	}

	return s.store.Job().Update(ctx, job)
}

func (s *JobService) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error {
	existing, err := s.store.Job().Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrJobNotFound(jobID)
		}
		return err
	}

	if existing.PostedBy != employerID {
		return NewErrForbidden(fmt.Sprintf("employer %s does not own job %s", employerID, jobID))
	}

	return s.store.Job().Delete(ctx, jobID)
}

func (s *JobService) ListJobs(ctx context.Context, filter *store.JobQueryFilter) (model.JobList, error) {
	return s.store.Job().List(ctx, filter)
}
