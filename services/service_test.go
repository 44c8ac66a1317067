package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feedstack/feedstack/models"
)

// seedClock hands out strictly increasing timestamps so newest-first
// assertions never depend on wall clock resolution.
var seedTicks int64

func nextSeedTime() time.Time {
	return time.Unix(1700000000, 0).Add(time.Duration(atomic.AddInt64(&seedTicks, 1)) * time.Second)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		CreatedAt: nextSeedTime(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:  authorID,
		Title:     title,
		Content:   "content of " + title,
		Published: published,
		CreatedAt: nextSeedTime(),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, postID, authorID uint, parentID *uint, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: nextSeedTime(),
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedPosts(t *testing.T, db *gorm.DB, authorID uint, n int) []*models.Post {
	t.Helper()
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, seedPost(t, db, authorID, fmt.Sprintf("post %d", i), true))
	}
	return posts
}
