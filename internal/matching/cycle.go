package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/store/model"
	"github.com/nichehire/nichehire/pkg/metrics"
	"go.uber.org/zap"
)

// JobSource is the slice of the job store the cycle needs.
type JobSource interface {
	ListUnnotified(ctx context.Context) (model.JobList, error)
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

// UserSource is the slice of the user store the cycle needs.
type UserSource interface {
	ListByRole(ctx context.Context, role string) (model.UserList, error)
}

// Report summarizes one matching cycle.
type Report struct {
	JobsProcessed        int
	NotificationsSent    int
	NotificationFailures int
}

// Cycle processes every job the scheduler has not notified about yet: match
// job seekers by niche, dispatch one notification each, then mark the job
// notified. The notified flag is the only processed-marker; a crash between
// dispatch and mark means the next cycle re-sends to the same recipients.
// At-least-once is the accepted trade-off.
type Cycle struct {
	jobs       JobSource
	users      UserSource
	dispatcher *Dispatcher
}

func NewCycle(jobs JobSource, users UserSource, dispatcher *Dispatcher) *Cycle {
	return &Cycle{
		jobs:       jobs,
		users:      users,
		dispatcher: dispatcher,
	}
}

func (c *Cycle) Run(ctx context.Context) (Report, error) {
	var report Report

	jobs, err := c.jobs.ListUnnotified(ctx)
	if err != nil {
		return report, err
	}

	if len(jobs) == 0 {
		return report, nil
	}

	// One immutable snapshot of the job seekers per cycle.
	jobSeekers, err := c.users.ListByRole(ctx, model.RoleJobSeeker)
	if err != nil {
		return report, err
	}

	log := zap.S().Named("matching")
	for _, job := range jobs {
		matched := MatchUsers(job, jobSeekers)

		// The mailer is the only network-bound step; it runs outside any
		// store transaction.
		sent, failed := c.dispatcher.Dispatch(ctx, job, matched)
		report.NotificationsSent += sent
		report.NotificationFailures += failed

		// Mark even when some sends failed; re-driving the whole batch for
		// one failed recipient is not attempted.
		if err := c.jobs.MarkNotified(ctx, job.ID); err != nil {
			log.Errorf("failed to mark job %s notified: %v", job.ID, err)
			continue
		}
		report.JobsProcessed++

		log.Infof("job %s processed: %d matched, %d sent, %d failed", job.ID, len(matched), sent, failed)
	}

	metrics.IncreaseMatchingJobsProcessed(report.JobsProcessed)
	metrics.IncreaseNotificationsSent(report.NotificationsSent)
	metrics.IncreaseNotificationFailures(report.NotificationFailures)

	return report, nil
}
