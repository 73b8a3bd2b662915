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

var _ = Describe("user service", Ordered, func() {
	var (
		s      st.Store
		gormdb *gorm.DB
		svc    *service.UserService
	)

	BeforeAll(func() {
		db, err := st.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = st.NewStore(db)
		gormdb = db
		Expect(s.InitialMigration()).To(BeNil())

		svc = service.NewUserService(s)
	})

	AfterAll(func() {
		s.Close()
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM users;")
	})

	Context("register", func() {
		It("registers a job seeker with four unique niches", func() {
			user, err := svc.Register(context.TODO(), model.User{
				Name:        "Ada",
				Email:       "ada@example.com",
				Role:        model.RoleJobSeeker,
				FirstNiche:  "Data Science",
				SecondNiche: "Marketing",
				ThirdNiche:  "Sales",
				FourthNiche: "Design",
			})
			Expect(err).To(BeNil())
			Expect(user.ID).ToNot(Equal(uuid.Nil))
		})

		It("rejects duplicate niche slots", func() {
			_, err := svc.Register(context.TODO(), model.User{
				Name:        "Ada",
				Email:       "ada@example.com",
				Role:        model.RoleJobSeeker,
				FirstNiche:  "Data Science",
				SecondNiche: "Data Science",
				ThirdNiche:  "Sales",
				FourthNiche: "Design",
			})
			var invalid *service.ErrInvalidNiches
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("rejects an empty niche slot for a job seeker", func() {
			_, err := svc.Register(context.TODO(), model.User{
				Name:        "Ada",
				Email:       "ada@example.com",
				Role:        model.RoleJobSeeker,
				FirstNiche:  "Data Science",
				SecondNiche: "Marketing",
				ThirdNiche:  "Sales",
			})
			var invalid *service.ErrInvalidNiches
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		It("registers an employer without niches", func() {
			_, err := svc.Register(context.TODO(), model.User{
				Name:  "Initech",
				Email: "jobs@initech.example.com",
				Role:  model.RoleEmployer,
			})
			Expect(err).To(BeNil())
		})

		It("rejects an unknown role", func() {
			_, err := svc.Register(context.TODO(), model.User{
				Name:  "Ada",
				Email: "ada@example.com",
				Role:  "admin",
			})
			var forbidden *service.ErrForbidden
			Expect(errors.As(err, &forbidden)).To(BeTrue())
		})
	})
})
