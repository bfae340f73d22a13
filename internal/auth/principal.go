package auth

import "github.com/jeswin2007cs/scms/internal/model"

// Role is the identity class of an authenticated request.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a request value to a Role; anything unknown is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Principal is exactly one of: anonymous, a student, or an admin.
// The zero value is anonymous.
type Principal struct {
	role    Role
	student model.Student
	admin   model.Admin
}

func Anonymous() Principal { return Principal{} }

func StudentPrincipal(s model.Student) Principal {
	return Principal{role: RoleStudent, student: s}
}

func AdminPrincipal(a model.Admin) Principal {
	return Principal{role: RoleAdmin, admin: a}
}

// Role returns "" for anonymous principals.
func (p Principal) Role() Role { return p.role }

func (p Principal) IsAnonymous() bool { return p.role == "" }

// Student returns the student record when the principal is a student.
func (p Principal) Student() (model.Student, bool) {
	return p.student, p.role == RoleStudent
}

// Admin returns the admin record when the principal is an admin.
func (p Principal) Admin() (model.Admin, bool) {
	return p.admin, p.role == RoleAdmin
}

// Subject is the identifier used in tokens: gmail for students, email for admins.
func (p Principal) Subject() string {
	switch p.role {
	case RoleStudent:
		return p.student.Gmail
	case RoleAdmin:
		return p.admin.Email
	default:
		return ""
	}
}
