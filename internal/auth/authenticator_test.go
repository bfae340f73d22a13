package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

func newRepo(t *testing.T) *store.Repository {
	t.Helper()
	docs, err := store.NewFileDocuments(t.TempDir())
	require.NoError(t, err)
	return store.NewRepository(docs)
}

func seededAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.SaveStudents(ctx, []model.Student{
		{Gmail: "a@x.com", Password: "pw", Name: "First", Department: "CS", Semester: "3"},
		{Gmail: "a@x.com", Password: "pw", Name: "Duplicate", Department: "EE", Semester: "1"},
		{Gmail: "b@x.com", Password: "other", Name: "B"},
	}))
	require.NoError(t, repo.SaveAdmins(ctx, []model.Admin{{Email: "root@x.com", Password: "admin"}}))
	return NewAuthenticator(repo)
}

func TestAuthenticateStudent(t *testing.T) {
	ctx := context.Background()
	a := seededAuthenticator(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
		wantName string
	}{
		{"exact match", "b@x.com", "other", true, "B"},
		{"first duplicate wins", "a@x.com", "pw", true, "First"},
		{"wrong password", "a@x.com", "PW", false, ""},
		{"unknown email", "c@x.com", "pw", false, ""},
		{"password of another student", "b@x.com", "pw", false, ""},
		{"empty credentials", "", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok, err := a.AuthenticateStudent(ctx, tt.email, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, s.Name)
		})
	}
}

func TestAuthenticateAdmin(t *testing.T) {
	ctx := context.Background()
	a := seededAuthenticator(t)

	ad, ok, err := a.AuthenticateAdmin(ctx, "root@x.com", "admin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "root@x.com", ad.Email)

	_, ok, err = a.AuthenticateAdmin(ctx, "root@x.com", "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	// Student credentials never authenticate an admin.
	_, ok, err = a.AuthenticateAdmin(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticate_EmptyCollections(t *testing.T) {
	ctx := context.Background()
	a := NewAuthenticator(newRepo(t))

	_, ok, err := a.AuthenticateStudent(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = a.AuthenticateAdmin(ctx, "root@x.com", "admin")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthenticate_ByRole(t *testing.T) {
	ctx := context.Background()
	a := seededAuthenticator(t)

	p, err := a.Authenticate(ctx, RoleStudent, "b@x.com", "other")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, p.Role())

	p, err = a.Authenticate(ctx, RoleAdmin, "root@x.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, p.Role())

	p, err = a.Authenticate(ctx, RoleAdmin, "b@x.com", "other")
	require.NoError(t, err)
	assert.True(t, p.IsAnonymous())

	_, err = a.Authenticate(ctx, Role("teacher"), "b@x.com", "other")
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	a := seededAuthenticator(t)

	p, err := a.Lookup(ctx, RoleStudent, "a@x.com")
	require.NoError(t, err)
	s, ok := p.Student()
	require.True(t, ok)
	assert.Equal(t, "First", s.Name)

	p, err = a.Lookup(ctx, RoleAdmin, "missing@x.com")
	require.NoError(t, err)
	assert.True(t, p.IsAnonymous())

	p, err = a.Lookup(ctx, "", "a@x.com")
	require.NoError(t, err)
	assert.True(t, p.IsAnonymous())
}
