package matching

import (
	"github.com/nichehire/nichehire/internal/store/model"
)

// MatchUsers returns the job seekers whose niche preferences contain the
// job's niche. Pure and deterministic; a job without a niche matches no one,
// and a user with the niche in more than one slot is returned once.
func MatchUsers(job model.Job, users model.UserList) model.UserList {
	if job.Niche == "" {
		return nil
	}

	var matched model.UserList
	for _, user := range users {
		if user.Role != model.RoleJobSeeker {
			continue
		}
		for _, niche := range user.Niches() {
			if niche != "" && niche == job.Niche {
				matched = append(matched, user)
				break
			}
		}
	}

	return matched
}
