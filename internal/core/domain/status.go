package domain

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// UserStatus represents the account state of a user.
//
// State machine:
//
//	ACTIVE --Block(1..3d)--> BLOCKED --window elapses / Unblock--> ACTIVE
//	ACTIVE or BLOCKED --Delete--> DELETED (terminal)
type UserStatus string

const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
	UserDeleted UserStatus = "DELETED"
)

// ApplicationStatus represents the review state of a passport application.
// PENDING and APPROVED both count as "active" and block new submissions by
// the same user; REJECTED applications may accumulate historically.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// ValidApplicationStatus reports whether s is a known application status
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}
