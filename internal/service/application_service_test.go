package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/config"
	"github.com/nichehire/nichehire/internal/service"
	st "github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("application service", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
		mailer *captureMailer
		svc    *service.ApplicationService

		jobSeeker *model.User
		employer  *model.User
		job       *model.Job
	)

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = st.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		mailer = &captureMailer{}
		svc = service.NewApplicationService(s, mailer)
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		var err error
		jobSeeker, err = s.User().Create(context.TODO(), model.User{
			ID:          uuid.New(),
			Name:        "Ada",
			Email:       uuid.NewString() + "@example.com",
			Role:        model.RoleJobSeeker,
			FirstNiche:  "Data Science",
			SecondNiche: "Marketing",
			ThirdNiche:  "Sales",
			FourthNiche: "Design",
		})
		Expect(err).To(BeNil())

		employer, err = s.User().Create(context.TODO(), model.User{
			ID:    uuid.New(),
			Name:  "Initech",
			Email: uuid.NewString() + "@example.com",
			Role:  model.RoleEmployer,
		})
		Expect(err).To(BeNil())

		job, err = s.Job().Create(context.TODO(), model.Job{
			ID:           uuid.New(),
			Title:        "Data Engineer",
			Organization: "Initech",
			Niche:        "Data Science",
			PostedBy:     employer.ID,
		})
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM applications;")
		gormdb.Exec("DELETE FROM jobs;")
		gormdb.Exec("DELETE FROM users;")
		mailer.reset()
	})

	Context("post application", func() {
		It("creates a pending application", func() {
			application, err := svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{CoverLetter: "hi"})
			Expect(err).To(BeNil())
			Expect(application.Status).To(Equal(string(service.StatusPending)))
			Expect(application.EmployerID).To(Equal(employer.ID))
		})

		It("rejects a duplicate application", func() {
			_, err := svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{})
			Expect(err).To(BeNil())

			_, err = svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{})
			var dup *service.ErrDuplicateApplication
			Expect(errors.As(err, &dup)).To(BeTrue())
		})

		It("fails for an unknown job", func() {
			_, err := svc.PostApplication(context.TODO(), jobSeeker.ID, uuid.New(), service.ApplicationForm{})
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("fails when the applicant is not a job seeker", func() {
			_, err := svc.PostApplication(context.TODO(), employer.ID, job.ID, service.ApplicationForm{})
			var forbidden *service.ErrForbidden
			Expect(errors.As(err, &forbidden)).To(BeTrue())
		})
	})

	Context("advance status", func() {
		var application *model.Application

		BeforeEach(func() {
			var err error
			application, err = svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{})
			Expect(err).To(BeNil())
		})

		It("moves the application forward and notifies the seeker", func() {
			result, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusReviewed)
			Expect(err).To(BeNil())
			Expect(result.Status).To(Equal(string(service.StatusReviewed)))

			mail := mailer.sent()
			Expect(mail).To(HaveLen(1))
			Expect(mail[0].To).To(Equal(jobSeeker.Email))
			Expect(mail[0].Subject).To(ContainSubstring("reviewed"))
		})

		It("sends the condolence template on fulfilled", func() {
			_, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusFulfilled)
			Expect(err).To(BeNil())

			mail := mailer.sent()
			Expect(mail).To(HaveLen(1))
			Expect(mail[0].Body).To(ContainSubstring("fulfilled by another candidate"))
		})

		It("refuses a backward transition", func() {
			_, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusShortlisted)
			Expect(err).To(BeNil())

			_, err = svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusReviewed)
			var invalid *service.ErrInvalidTransition
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("refuses any transition out of a terminal status", func() {
			_, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusFulfilled)
			Expect(err).To(BeNil())

			_, err = svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusSelected)
			var invalid *service.ErrInvalidTransition
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("refuses an unrecognized status", func() {
			_, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, "rejected")
			var invalid *service.ErrInvalidStatus
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("refuses an employer who does not own the job", func() {
			_, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, uuid.New(), service.StatusReviewed)
			var forbidden *service.ErrForbidden
			Expect(errors.As(err, &forbidden)).To(BeTrue())
		})

		It("keeps the status change when the mail fails", func() {
			mailer.err = errors.New("smtp down")

			result, err := svc.AdvanceApplicationStatus(context.TODO(), application.ID, employer.ID, service.StatusReviewed)
			Expect(err).To(BeNil())
			Expect(result.Status).To(Equal(string(service.StatusReviewed)))
		})
	})

	Context("delete application", func() {
		var application *model.Application

		BeforeEach(func() {
			var err error
			application, err = svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{})
			Expect(err).To(BeNil())
		})

		It("hides the application from the deleting party only", func() {
			Expect(svc.DeleteApplication(context.TODO(), application.ID, model.RoleJobSeeker)).To(BeNil())

			seekerApps, err := svc.ListApplications(context.TODO(), jobSeeker.ID, model.RoleJobSeeker)
			Expect(err).To(BeNil())
			Expect(seekerApps).To(HaveLen(0))

			employerApps, err := svc.ListApplications(context.TODO(), employer.ID, model.RoleEmployer)
			Expect(err).To(BeNil())
			Expect(employerApps).To(HaveLen(1))
		})

		It("destroys the application on mutual deletion", func() {
			Expect(svc.DeleteApplication(context.TODO(), application.ID, model.RoleJobSeeker)).To(BeNil())
			Expect(svc.DeleteApplication(context.TODO(), application.ID, model.RoleEmployer)).To(BeNil())

			_, err := s.Application().Get(context.TODO(), application.ID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("lets the seeker re-apply after mutual deletion", func() {
			Expect(svc.DeleteApplication(context.TODO(), application.ID, model.RoleJobSeeker)).To(BeNil())
			Expect(svc.DeleteApplication(context.TODO(), application.ID, model.RoleEmployer)).To(BeNil())

			_, err := svc.PostApplication(context.TODO(), jobSeeker.ID, job.ID, service.ApplicationForm{})
			Expect(err).To(BeNil())
		})

		It("rejects an unknown role", func() {
			err := svc.DeleteApplication(context.TODO(), application.ID, "admin")
			var forbidden *service.ErrForbidden
			Expect(errors.As(err, &forbidden)).To(BeTrue())
		})

		It("fails for an unknown application", func() {
			err := svc.DeleteApplication(context.TODO(), uuid.New(), model.RoleJobSeeker)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})
	})
})
