package auth

import (
	"context"
	"fmt"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

// Authenticator checks credentials against the stored student and admin lists.
// Passwords are compared as stored; nothing is hashed.
type Authenticator struct {
	repo *store.Repository
}

// NewAuthenticator creates an authenticator backed by a repository.
func NewAuthenticator(repo *store.Repository) *Authenticator {
	return &Authenticator{repo: repo}
}

// AuthenticateStudent returns the first student whose gmail and password both
// match exactly. ok is false when nothing matches, including an empty list.
func (a *Authenticator) AuthenticateStudent(ctx context.Context, email, password string) (model.Student, bool, error) {
	students, err := a.repo.Students(ctx)
	if err != nil {
		return model.Student{}, false, fmt.Errorf("auth: load students: %w", err)
	}
	for _, s := range students {
		if s.Gmail == email && s.Password == password {
			return s, true, nil
		}
	}
	return model.Student{}, false, nil
}

// AuthenticateAdmin returns the first admin whose email and password both match.
func (a *Authenticator) AuthenticateAdmin(ctx context.Context, email, password string) (model.Admin, bool, error) {
	admins, err := a.repo.Admins(ctx)
	if err != nil {
		return model.Admin{}, false, fmt.Errorf("auth: load admins: %w", err)
	}
	for _, ad := range admins {
		if ad.Email == email && ad.Password == password {
			return ad, true, nil
		}
	}
	return model.Admin{}, false, nil
}

// LookupStudent finds a student by gmail alone. Used for bearer tokens,
// where the password was already checked when the token was issued.
func (a *Authenticator) LookupStudent(ctx context.Context, gmail string) (model.Student, bool, error) {
	students, err := a.repo.Students(ctx)
	if err != nil {
		return model.Student{}, false, fmt.Errorf("auth: load students: %w", err)
	}
	for _, s := range students {
		if s.Gmail == gmail {
			return s, true, nil
		}
	}
	return model.Student{}, false, nil
}

// LookupAdmin finds an admin by email alone.
func (a *Authenticator) LookupAdmin(ctx context.Context, email string) (model.Admin, bool, error) {
	admins, err := a.repo.Admins(ctx)
	if err != nil {
		return model.Admin{}, false, fmt.Errorf("auth: load admins: %w", err)
	}
	for _, ad := range admins {
		if ad.Email == email {
			return ad, true, nil
		}
	}
	return model.Admin{}, false, nil
}

// Authenticate checks credentials for the given role and returns the
// matching principal, or Anonymous when they do not match.
func (a *Authenticator) Authenticate(ctx context.Context, role Role, email, password string) (Principal, error) {
	switch role {
	case RoleStudent:
		s, ok, err := a.AuthenticateStudent(ctx, email, password)
		if err != nil || !ok {
			return Anonymous(), err
		}
		return StudentPrincipal(s), nil
	case RoleAdmin:
		ad, ok, err := a.AuthenticateAdmin(ctx, email, password)
		if err != nil || !ok {
			return Anonymous(), err
		}
		return AdminPrincipal(ad), nil
	default:
		return Anonymous(), fmt.Errorf("auth: unknown role %q", role)
	}
}

// Lookup resolves a principal from a role and identifier without a password.
func (a *Authenticator) Lookup(ctx context.Context, role Role, id string) (Principal, error) {
	switch role {
	case RoleStudent:
		s, ok, err := a.LookupStudent(ctx, id)
		if err != nil || !ok {
			return Anonymous(), err
		}
		return StudentPrincipal(s), nil
	case RoleAdmin:
		ad, ok, err := a.LookupAdmin(ctx, id)
		if err != nil || !ok {
			return Anonymous(), err
		}
		return AdminPrincipal(ad), nil
	default:
		return Anonymous(), nil
	}
}
