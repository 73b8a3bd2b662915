package store_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nichehire/nichehire/internal/config"
	st "github.com/nichehire/nichehire/internal/store"
	"github.com/nichehire/nichehire/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const (
	insertJobStm = "INSERT INTO jobs (id, title, organization, niche, posted_by, notified, created_at, updated_at) VALUES ('%s', '%s', '%s', '%s', '%s', %t, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);"
)

var _ = Describe("job store", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = st.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM jobs;")
	})

	Context("list unnotified", func() {
		It("returns only jobs not yet processed", func() {
			employerID := uuid.NewString()
			unnotifiedID := uuid.NewString()

			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, unnotifiedID, "job1", "org1", "Data Science", employerID, false))
			Expect(tx.Error).To(BeNil())
			tx = gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), "job2", "org1", "Sales", employerID, true))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().ListUnnotified(context.TODO())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].ID.String()).To(Equal(unnotifiedID))
		})

		It("returns nothing when every job is processed", func() {
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, uuid.NewString(), "job1", "org1", "Sales", uuid.NewString(), true))
			Expect(tx.Error).To(BeNil())

			jobs, err := s.Job().ListUnnotified(context.TODO())
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(0))
		})
	})

	Context("mark notified", func() {
		It("flips the flag exactly once and keeps it set", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, "job1", "org1", "Sales", uuid.NewString(), false))
			Expect(tx.Error).To(BeNil())

			Expect(s.Job().MarkNotified(context.TODO(), jobID)).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Notified).To(BeTrue())

			// marking again is idempotent
			Expect(s.Job().MarkNotified(context.TODO(), jobID)).To(BeNil())
			job, err = s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Notified).To(BeTrue())
		})

		It("fails for an unknown job", func() {
			err := s.Job().MarkNotified(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("update", func() {
		It("never resets the notified flag", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, "job1", "org1", "Sales", uuid.NewString(), true))
			Expect(tx.Error).To(BeNil())

			_, err := s.Job().Update(context.TODO(), model.Job{ID: jobID, Title: "job1-renamed", Notified: false})
			Expect(err).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Title).To(Equal("job1-renamed"))
			Expect(job.Notified).To(BeTrue())
		})

		It("clears content fields set to their zero value", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, "job1", "org1", "Sales", uuid.NewString(), false))
			Expect(tx.Error).To(BeNil())

			_, err := s.Job().Update(context.TODO(), model.Job{ID: jobID, Title: "job1", Niche: "Sales"})
			Expect(err).To(BeNil())

			job, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(BeNil())
			Expect(job.Organization).To(BeEmpty())
			Expect(job.SalaryFrom).To(BeZero())
		})

		It("fails for an unknown job", func() {
			_, err := s.Job().Update(context.TODO(), model.Job{ID: uuid.New(), Title: "ghost"})
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})

	Context("delete", func() {
		It("removes the job", func() {
			jobID := uuid.New()
			tx := gormdb.Exec(fmt.Sprintf(insertJobStm, jobID, "job1", "org1", "Sales", uuid.NewString(), false))
			Expect(tx.Error).To(BeNil())

			Expect(s.Job().Delete(context.TODO(), jobID)).To(BeNil())

			_, err := s.Job().Get(context.TODO(), jobID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})
	})
})
