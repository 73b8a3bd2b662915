package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/mailer"
	"github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/internal/store/model"
	"github.com/nichehire/nichehire/pkg/metrics"
	"go.uber.org/zap"
)

type ApplicationService struct {
	store  store.Store
	mailer mailer.Mailer
}

func NewApplicationService(store store.Store, mailer mailer.Mailer) *ApplicationService {
	return &ApplicationService{store: store, mailer: mailer}
}

// ApplicationForm carries the free-form details the job seeker submits when
// applying.
type ApplicationForm struct {
	CoverLetter string
	ResumeURL   string
}

// PostApplication creates a pending application for the (job seeker, job)
// pair. A live application for the same pair fails with
// ErrDuplicateApplication, regardless of which party has soft-deleted it.
func (s *ApplicationService) PostApplication(ctx context.Context, jobSeekerID, jobID uuid.UUID, form ApplicationForm) (*model.Application, error) {
	user, err := s.store.User().Get(ctx, jobSeekerID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrUserNotFound(jobSeekerID)
		}
		return nil, err
	}

	if user.Role != model.RoleJobSeeker {
		return nil, NewErrForbidden(fmt.Sprintf("user %s is not a job seeker", jobSeekerID))
	}

	job, err := s.store.Job().Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(jobID)
		}
		return nil, err
	}

	application := model.Application{
		ID:          uuid.New(),
		JobSeekerID: jobSeekerID,
		EmployerID:  job.PostedBy,
		JobID:       jobID,
		Status:      string(StatusPending),
		CoverLetter: form.CoverLetter,
		ResumeURL:   form.ResumeURL,
	}

	result, err := s.store.Application().Create(ctx, application)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrDuplicateApplication(jobSeekerID, jobID)
		}
		return nil, err
	}

	return result, nil
}

// ListApplications returns the applications visible to the requester: their
// own side of the pair, minus the ones they have soft-deleted.
func (s *ApplicationService) ListApplications(ctx context.Context, userID uuid.UUID, role string) (model.ApplicationList, error) {
	switch role {
	case model.RoleJobSeeker:
		return s.store.Application().ListForJobSeeker(ctx, userID)
	case model.RoleEmployer:
		return s.store.Application().ListForEmployer(ctx, userID)
	default:
		return nil, NewErrForbidden(fmt.Sprintf("unknown role %q", role))
	}
}

// AdvanceApplicationStatus moves an application forward in the hiring funnel.
// Only the employer owning the job may call it, and the target must not sit
// before the current status in the funnel ordering.
func (s *ApplicationService) AdvanceApplicationStatus(ctx context.Context, applicationID, employerID uuid.UUID, target Status) (*model.Application, error) {
	if !target.Valid() {
		return nil, NewErrInvalidStatus(string(target))
	}

	application, err := s.store.Application().Get(ctx, applicationID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrApplicationNotFound(applicationID)
		}
		return nil, err
	}

	if application.EmployerID != employerID {
		return nil, NewErrStatusUpdateForbidden(applicationID, employerID)
	}

	current := Status(application.Status)
	if !current.CanTransition(target) {
		return nil, NewErrInvalidTransition(current, target)
	}

	result, err := s.store.Application().SetStatus(ctx, applicationID, string(target))
	if err != nil {
		return nil, err
	}

	metrics.IncreaseApplicationTransitions(string(target))

	// The status change is durable at this point; a failed mail must not
	// roll it back or surface to the employer.
	if err := s.notifyJobSeeker(ctx, result, target); err != nil {
		zap.S().Named("application").Warnf("failed to notify job seeker for application %s: %v", applicationID, err)
	}

	return result, nil
}

// DeleteApplication sets the requester's soft-delete flag. The application is
// destroyed for good once both parties have deleted it.
func (s *ApplicationService) DeleteApplication(ctx context.Context, applicationID uuid.UUID, role string) error {
	if role != model.RoleJobSeeker && role != model.RoleEmployer {
		return NewErrForbidden(fmt.Sprintf("unknown role %q", role))
	}

	destroyed, err := s.store.Application().MarkDeleted(ctx, applicationID, role)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrApplicationNotFound(applicationID)
		}
		return err
	}

	if destroyed {
		zap.S().Named("application").Infof("application %s deleted by both parties, destroyed", applicationID)
	}

	return nil
}

func (s *ApplicationService) notifyJobSeeker(ctx context.Context, application *model.Application, status Status) error {
	jobSeeker, err := s.store.User().Get(ctx, application.JobSeekerID)
	if err != nil {
		return err
	}

	job, err := s.store.Job().Get(ctx, application.JobID)
	if err != nil {
		return err
	}

	subject, body := statusMessage(jobSeeker.Name, job.Title, job.Organization, status)
	return s.mailer.Send(ctx, jobSeeker.Email, subject, body)
}

// statusMessage renders the two templates of the hiring funnel: a condolence
// note when the position was fulfilled by another candidate, a progress note
// for everything else.
func statusMessage(name, title, organization string, status Status) (subject string, body string) {
	if status == StatusFulfilled {
		subject = fmt.Sprintf("Update on your application for %s", title)
		body = fmt.Sprintf(
			"Hello %s,\n\nThe position %s at %s has been fulfilled by another candidate. "+
				"Thank you for applying, and good luck with your search.\n",
			name, title, organization,
		)
		return subject, body
	}

	subject = fmt.Sprintf("Your application for %s is now %s", title, status)
	body = fmt.Sprintf(
		"Hello %s,\n\nYour application for %s at %s has moved to status %q.\n",
		name, title, organization, status,
	)
	return subject, body
}
