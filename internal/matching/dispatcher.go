package matching

import (
	"context"
	"fmt"

	"github.com/nichehire/nichehire/internal/mailer"
	"github.com/nichehire/nichehire/internal/store/model"
	"go.uber.org/zap"
)

// Dispatcher sends one job notification per matched user. A failed send is
// logged and counted per recipient; it never aborts the rest of the batch and
// is not retried here.
type Dispatcher struct {
	mailer mailer.Mailer
}

func NewDispatcher(mailer mailer.Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

func (d *Dispatcher) Dispatch(ctx context.Context, job model.Job, users model.UserList) (sent int, failed int) {
	subject, body := renderJobNotification(job)

	for _, user := range users {
		if err := d.mailer.Send(ctx, user.Email, subject, body); err != nil {
			zap.S().Named("dispatcher").Warnf("failed to notify %s about job %s: %v", user.Email, job.ID, err)
			failed++
			continue
		}
		sent++
	}

	return sent, failed
}

func renderJobNotification(job model.Job) (subject string, body string) {
	subject = fmt.Sprintf("New %s opening: %s", job.Niche, job.Title)
	body = fmt.Sprintf(
		"A new job matching your niche preferences has been posted.\n\n"+
			"Title: %s\nOrganization: %s\nLocation: %s\nSalary: %d - %d\n",
		job.Title, job.Organization, job.Location, job.SalaryFrom, job.SalaryTo,
	)
	return subject, body
}
