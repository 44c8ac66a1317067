package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedstack/feedstack/models"
)

func TestUserCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	first := &models.User{Email: "a@x.com", Username: "a"}
	require.NoError(t, svc.Create(first))

	dup := &models.User{Email: "a@x.com", Username: "other"}
	err := svc.Create(dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	require.NoError(t, svc.Create(&models.User{Email: "a@x.com", Username: "a"}))

	err := svc.Create(&models.User{Email: "b@x.com", Username: "a"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserPointLookups(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	seeded := seedUser(t, db, "carol")

	byID, err := svc.GetByID(seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", byID.Username)

	byEmail, err := svc.GetByEmail("carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byEmail.ID)

	byUsername, err := svc.GetByUsername("carol")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byUsername.ID)

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserGetAllPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		seedUser(t, db, name)
	}

	users, meta, err := svc.GetAll(NewPagination(1, 2, 10))
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)
	// newest first
	assert.Equal(t, "u5", users[0].Username)

	users, meta, err = svc.GetAll(NewPagination(3, 2, 10))
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.False(t, meta.HasMore)
}

func TestUserUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := seedUser(t, db, "dave")
	other := seedUser(t, db, "erin")

	name := "Dave"
	bio := "hello"
	updated, err := svc.Update(user.ID, UserUpdate{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Dave", updated.Name)
	assert.Equal(t, "hello", updated.Bio)

	// collision with another user's email
	taken := other.Email
	_, err = svc.Update(user.ID, UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// keeping your own email is not a conflict
	own := user.Email
	_, err = svc.Update(user.ID, UserUpdate{Email: &own})
	assert.NoError(t, err)

	_, err = svc.Update(9999, UserUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := seedUser(t, db, "frank")

	require.NoError(t, svc.Delete(user.ID))
	_, err := svc.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting a missing user is a no-op
	assert.NoError(t, svc.Delete(user.ID))
}
