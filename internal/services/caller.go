package services

type Role string

const (
	RoleDepositor Role = "DEPOSITOR"
	RoleTreasurer Role = "TREASURER"
	RoleCommittee Role = "COMMITTEE"
	RoleAdmin     Role = "ADMIN"
)

// Caller identifies who is acting. Authentication happens upstream.
type Caller struct {
	ID   uint
	Role Role
}

// Privileged callers may see and act on requests they do not own.
func (c Caller) Privileged() bool {
	switch c.Role {
	case RoleTreasurer, RoleCommittee, RoleAdmin:
		return true
	}
	return false
}
