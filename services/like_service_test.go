package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedstack/feedstack/models"
)

func TestLikeOncePerPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "hello", true)

	like, err := svc.Like(user.ID, post.ID)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)

	_, err = svc.Like(user.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	_, err = svc.Like(user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "hello", true)

	first, err := svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)
	require.NotNil(t, first.Like)

	second, err := svc.Toggle(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Nil(t, second.Like)

	// two toggles return to the origin state
	liked, err := svc.HasLiked(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestUnlikeMissingRowSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "hello", true)

	assert.NoError(t, svc.Unlike(user.ID, post.ID))

	_, err := svc.Like(user.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Unlike(user.ID, post.ID))

	liked, err := svc.HasLiked(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestGetByUserAndPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "hello", true)

	_, err := svc.GetByUserAndPost(user.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := svc.Like(user.ID, post.ID)
	require.NoError(t, err)

	got, err := svc.GetByUserAndPost(user.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestLikeListViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello", true)
	other := seedPost(t, db, alice.ID, "world", true)

	_, err := svc.Like(alice.ID, post.ID)
	require.NoError(t, err)
	_, err = svc.Like(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = svc.Like(alice.ID, other.ID)
	require.NoError(t, err)

	byPost, meta, err := svc.GetByPost(post.ID, NewPagination(1, 50, 50))
	require.NoError(t, err)
	require.Len(t, byPost, 2)
	assert.Equal(t, int64(2), meta.Total)
	require.NotNil(t, byPost[0].User)

	byUser, meta, err := svc.GetByUser(alice.ID, NewPagination(1, 50, 50))
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, int64(2), meta.Total)
	require.NotNil(t, byUser[0].Post)
	require.NotNil(t, byUser[0].Post.Author)
}

func TestBatchCountsIncludeEveryRequestedID(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	liked := seedPost(t, db, alice.ID, "liked", true)
	cold := seedPost(t, db, alice.ID, "cold", true)

	_, err := svc.Like(alice.ID, liked.ID)
	require.NoError(t, err)
	_, err = svc.Like(bob.ID, liked.ID)
	require.NoError(t, err)

	counts, err := svc.CountByPosts([]uint{liked.ID, cold.ID, 9999})
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, int64(2), counts[liked.ID])
	assert.Equal(t, int64(0), counts[cold.ID])
	assert.Equal(t, int64(0), counts[9999])

	flags, err := svc.HasLikedPosts(alice.ID, []uint{liked.ID, cold.ID, 9999})
	require.NoError(t, err)
	require.Len(t, flags, 3)
	assert.True(t, flags[liked.ID])
	assert.False(t, flags[cold.ID])
	assert.False(t, flags[9999])

	empty, err := svc.CountByPosts(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCountByPost(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello", true)

	_, err := svc.Like(alice.ID, post.ID)
	require.NoError(t, err)
	_, err = svc.Like(bob.ID, post.ID)
	require.NoError(t, err)

	count, err := svc.CountByPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestLikeUniqueIndexAtStore(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	post := seedPost(t, db, user.ID, "hello", true)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error)
	err := db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
	assert.Error(t, err)
}
