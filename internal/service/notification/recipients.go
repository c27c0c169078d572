package notification

import (
	"github.com/personnel-hq/personnel-backend-go/internal/domain/employee"
)

// PresenceRecipients returns the recipient ids for a presence change: every
// team leader across the employee's teams plus the department manager,
// deduplicated by id. An employee leading their own team and managing their
// own department still appears exactly once.
func PresenceRecipients(leaders []employee.Employee, manager *employee.Employee) []string {
	seen := make(map[string]struct{})
	var recipients []string

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	for _, l := range leaders {
		add(l.ID)
	}
	if manager != nil {
		add(manager.ID)
	}

	return recipients
}

// SubmissionReviewer picks who reviews a fresh leave request: the
// snapshotted leader when present, otherwise the snapshotted manager. The
// second return value names the stage for the notification payload.
func SubmissionReviewer(leaderID, managerID *string) (*string, string) {
	if leaderID != nil {
		return leaderID, "leader"
	}
	if managerID != nil {
		return managerID, "manager"
	}
	return nil, ""
}
