package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id uuid.UUID, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrJobNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

func NewErrApplicationNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "application")
}

func NewErrUserNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "user")
}

type ErrDuplicateApplication struct {
	error
}

func NewErrDuplicateApplication(jobSeekerID, jobID uuid.UUID) *ErrDuplicateApplication {
	return &ErrDuplicateApplication{fmt.Errorf("job seeker %s has already applied to job %s", jobSeekerID, jobID)}
}

type ErrForbidden struct {
	error
}

func NewErrForbidden(message string) *ErrForbidden {
	return &ErrForbidden{fmt.Errorf("forbidden: %s", message)}
}

func NewErrStatusUpdateForbidden(applicationID, employerID uuid.UUID) *ErrForbidden {
	return NewErrForbidden(fmt.Sprintf("employer %s does not own application %s", employerID, applicationID))
}

type ErrInvalidStatus struct {
	error
}

func NewErrInvalidStatus(status string) *ErrInvalidStatus {
	return &ErrInvalidStatus{fmt.Errorf("unrecognized application status %q", status)}
}

type ErrInvalidTransition struct {
	error
}

func NewErrInvalidTransition(from, to Status) *ErrInvalidTransition {
	return &ErrInvalidTransition{fmt.Errorf("cannot move application status from %q to %q", from, to)}
}

type ErrInvalidNiches struct {
	error
}

func NewErrInvalidNiches(message string) *ErrInvalidNiches {
	return &ErrInvalidNiches{fmt.Errorf("invalid niche preferences: %s", message)}
}
