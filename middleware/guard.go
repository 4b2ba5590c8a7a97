package middleware

import (
	"hotelaudit/models"
)

// CanRunAuditAI decides whether actor may run AI actions (report generation,
// insight generation, item AI updates) against the given audit. Admins and
// reviewers may always; otherwise the actor must be the audit's auditor.
// Pure decision over role and ownership, no side effects.
func CanRunAuditAI(actor *models.User, audit *models.Audit) (bool, string) {
	if actor == nil {
		return false, "insufficient permissions"
	}
	if actor.Role == models.RoleAdmin || actor.Role == models.RoleReviewer {
		return true, ""
	}
	if actor.ID == audit.AuditorID {
		return true, ""
	}
	return false, "insufficient permissions"
}

// CanAssignReviewer reports whether actor may set an audit's reviewer.
func CanAssignReviewer(actor *models.User) bool {
	return actor != nil && (actor.Role == models.RoleAdmin || actor.Role == models.RoleReviewer)
}
