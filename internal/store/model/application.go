package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Application struct {
	ID          uuid.UUID `gorm:"primaryKey;"`
	JobSeekerID uuid.UUID `gorm:"uniqueIndex:applications_seeker_job;not null"`
	EmployerID  uuid.UUID `gorm:"index;not null"`
	JobID       uuid.UUID `gorm:"uniqueIndex:applications_seeker_job;not null"`
	Status      string    `gorm:"not null"`

	CoverLetter string
	ResumeURL   string

	// Bilateral soft delete. Each party hides the application for itself;
	// the row is hard deleted the moment both flags are true.
	DeletedByJobSeeker bool `gorm:"not null;default:false"`
	DeletedByEmployer  bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ApplicationList []Application

func (a Application) String() string {
	val, _ := json.Marshal(a)
	return string(val)
}

func NewApplicationFromID(id uuid.UUID) *Application {
	return &Application{ID: id}
}
