package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/auth"
	"restaurante-backend/internal/domain"
)

type userUpdateCall struct {
	id           int64
	email        *string
	fullName     *string
	passwordHash *string
}

type fakeUsersRepo struct {
	users   map[int64]*domain.User
	updates []userUpdateCall
}

func newFakeUsersRepo(users ...*domain.User) *fakeUsersRepo {
	f := &fakeUsersRepo{users: map[int64]*domain.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, email, fullName, passwordHash, role string) (*domain.User, error) {
	u := &domain.User{ID: int64(len(f.users) + 1), Email: email, FullName: fullName, PasswordHash: passwordHash, Role: role}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUsersRepo) Update(_ context.Context, id int64, email, fullName, passwordHash *string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	f.updates = append(f.updates, userUpdateCall{id, email, fullName, passwordHash})
	if email != nil {
		u.Email = *email
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if passwordHash != nil {
		u.PasswordHash = *passwordHash
	}
	return u, nil
}

func (f *fakeUsersRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestUpdateProfileNormalizesEmail(t *testing.T) {
	repo := newFakeUsersRepo(&domain.User{ID: 7, Email: "old@mail.com", Role: domain.RoleCliente})
	svc := NewUsersService(testLogger(), repo)

	email := "  Nuevo@Mail.com "
	u, err := svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "nuevo@mail.com", u.Email)
}

func TestUpdateProfileHashesPassword(t *testing.T) {
	repo := newFakeUsersRepo(&domain.User{ID: 7, Role: domain.RoleCliente})
	svc := NewUsersService(testLogger(), repo)

	pass := "secreto99"
	u, err := svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{Password: &pass})
	require.NoError(t, err)
	assert.NotEqual(t, pass, u.PasswordHash)
	assert.True(t, auth.CheckPassword(u.PasswordHash, pass))
}

func TestUpdateProfileRejectsBadInput(t *testing.T) {
	svc := NewUsersService(testLogger(), newFakeUsersRepo(&domain.User{ID: 7}))

	bad := "not-an-email"
	_, err := svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{Email: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	short := "abc"
	_, err = svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{Password: &short})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	blank := "   "
	_, err = svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{FullName: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestUpdateProfileEmptyUpdateIsRead(t *testing.T) {
	repo := newFakeUsersRepo(&domain.User{ID: 7, Email: "a@b.c", Role: domain.RoleCliente})
	svc := NewUsersService(testLogger(), repo)

	u, err := svc.UpdateProfile(context.Background(), cliente, domain.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.Empty(t, repo.updates)
}

func TestListUsersAdminOnly(t *testing.T) {
	svc := NewUsersService(testLogger(), newFakeUsersRepo())

	_, err := svc.List(context.Background(), cliente, 0, 100)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.List(context.Background(), admin, 0, 100)
	assert.NoError(t, err)
}

func TestUpdateUserAdminOnly(t *testing.T) {
	repo := newFakeUsersRepo(&domain.User{ID: 9, Email: "x@y.z"})
	svc := NewUsersService(testLogger(), repo)

	name := "Nuevo Nombre"
	_, err := svc.UpdateUser(context.Background(), cliente, 9, domain.UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	u, err := svc.UpdateUser(context.Background(), admin, 9, domain.UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, u.FullName)
}

func TestUpdateUserMissing(t *testing.T) {
	svc := NewUsersService(testLogger(), newFakeUsersRepo())

	name := "Alguien"
	_, err := svc.UpdateUser(context.Background(), admin, 404, domain.UserUpdate{FullName: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
