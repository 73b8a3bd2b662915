package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RoleJobSeeker = "jobseeker"
	RoleEmployer  = "employer"
)

type User struct {
	ID    uuid.UUID `gorm:"primaryKey;"`
	Name  string    `gorm:"not null"`
	Email string    `gorm:"uniqueIndex;not null"`
	Role  string    `gorm:"index;not null"`

	// Niche preference slots. Only job seekers carry them; uniqueness within
	// the four slots is validated at registration time.
	FirstNiche  string
	SecondNiche string
	ThirdNiche  string
	FourthNiche string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserList []User

func (u User) String() string {
	val, _ := json.Marshal(u)
	return string(val)
}

// Niches returns the user's niche slots in declaration order. Empty slots are
// included; callers skip them.
func (u User) Niches() [4]string {
	return [4]string{u.FirstNiche, u.SecondNiche, u.ThirdNiche, u.FourthNiche}
}
