package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID           uuid.UUID `gorm:"primaryKey;"`
	Title        string    `gorm:"not null"`
	Organization string
	Location     string
	SalaryFrom   int
	SalaryTo     int
	Niche        string `gorm:"index"`
	PostedBy     uuid.UUID
	ValidThrough time.Time
	// Notified goes false->true exactly once, when the matching cycle has
	// dispatched notifications for this job. It is never reset.
	Notified  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
