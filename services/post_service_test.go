package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedstack/feedstack/models"
)

func TestPostCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedUser(t, db, "alice")

	post := &models.Post{AuthorID: author.ID, Title: "hello", Content: "world"}
	require.NoError(t, svc.Create(post))
	assert.NotZero(t, post.ID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)

	err := svc.Create(&models.Post{AuthorID: 9999, Title: "orphan", Content: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostGetByIDHydration(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello", true)

	top := seedComment(t, db, post.ID, bob.ID, nil, "comment by bob")
	seedComment(t, db, post.ID, alice.ID, &top.ID, "reply by alice")
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: post.ID}).Error)

	got, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Username)

	require.Len(t, got.Comments, 1)
	comment := got.Comments[0]
	assert.Equal(t, "comment by bob", comment.Content)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Username)
	require.Len(t, comment.Replies, 1)
	require.NotNil(t, comment.Replies[0].Author)
	assert.Equal(t, "alice", comment.Replies[0].Author.Username)

	require.Len(t, got.Likes, 1)
	assert.Equal(t, int64(1), got.LikeCount)
	assert.Equal(t, int64(2), got.CommentCount) // replies count too

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostGetAllFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	seedPost(t, db, alice.ID, "Go tips", true)
	seedPost(t, db, alice.ID, "Unrelated draft", false)
	seedPost(t, db, bob.ID, "More GO tricks", true)

	// author filter
	posts, meta, err := svc.GetAll(NewPagination(1, 10, 10), PostFilters{AuthorID: &alice.ID})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, int64(2), meta.Total)

	// published filter
	published := true
	posts, _, err = svc.GetAll(NewPagination(1, 10, 10), PostFilters{Published: &published})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// case-insensitive search over title and content
	posts, _, err = svc.GetAll(NewPagination(1, 10, 10), PostFilters{Search: "go"})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// combined
	posts, _, err = svc.GetAll(NewPagination(1, 10, 10), PostFilters{AuthorID: &bob.ID, Search: "go"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "More GO tricks", posts[0].Title)
}

func TestPostGetAllCountsAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	posts := seedPosts(t, db, alice.ID, 3)

	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: posts[0].ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: posts[0].ID}).Error)
	seedComment(t, db, posts[1].ID, bob.ID, nil, "hi")

	got, meta, err := svc.GetAll(NewPagination(1, 10, 10), PostFilters{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(3), meta.Total)

	// newest first
	assert.Equal(t, posts[2].ID, got[0].ID)
	assert.Equal(t, posts[0].ID, got[2].ID)

	// batched counts attached per row
	assert.Equal(t, int64(2), got[2].LikeCount)
	assert.Equal(t, int64(0), got[2].CommentCount)
	assert.Equal(t, int64(1), got[1].CommentCount)
	require.NotNil(t, got[0].Author)
}

func TestPostFeedPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	seedPost(t, db, alice.ID, "published", true)
	seedPost(t, db, alice.ID, "draft", false)

	posts, meta, err := svc.GetFeed(NewPagination(1, 10, 10), PostFilters{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "published", posts[0].Title)
	assert.Equal(t, int64(1), meta.Total)
}

func TestPostUpdateAndSetPublished(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "before", false)

	title := "after"
	updated, err := svc.Update(post.ID, PostUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.False(t, updated.Published)

	published, err := svc.SetPublished(post.ID, true)
	require.NoError(t, err)
	assert.True(t, published.Published)
	assert.Equal(t, "after", published.Title)

	_, err = svc.Update(9999, PostUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostIsAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello", true)

	ok, err := svc.IsAuthor(post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAuthor(post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.IsAuthor(9999, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "hello", true)

	require.NoError(t, svc.Delete(post.ID))
	_, err := svc.GetByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, svc.Delete(post.ID))
}
