package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
)

// PostService wraps post persistence, filtering and aggregation.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService instance.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostFilters narrows a post listing. All filters are combinable; zero
// values mean "no filter".
type PostFilters struct {
	AuthorID  *uint
	Published *bool
	Search    string
}

// PostUpdate holds a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Title     *string
	Content   *string
	ImageURL  *string
	Published *bool
}

// Create inserts a post after verifying the author exists, then returns it
// with the author embedded.
func (s *PostService) Create(post *models.Post) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", post.AuthorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	if err := s.db.Create(post).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").First(post, post.ID).Error
}

// GetByID returns a fully hydrated post: author, top-level comments with
// their replies and reply authors, likes, and like/comment counts.
func (s *PostService) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comments := []models.Comment{}
	err := s.db.Where("post_id = ? AND parent_id IS NULL", id).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	likes := []models.Like{}
	if err := s.db.Where("post_id = ?", id).Order("created_at DESC").Find(&likes).Error; err != nil {
		return nil, err
	}
	post.Likes = likes
	post.LikeCount = int64(len(likes))

	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&post.CommentCount).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAll returns one page of posts, newest first, with authors and
// like/comment counts attached.
func (s *PostService) GetAll(p Pagination, f PostFilters) ([]models.Post, Meta, error) {
	query := s.db.Model(&models.Post{})
	if f.AuthorID != nil {
		query = query.Where("author_id = ?", *f.AuthorID)
	}
	if f.Published != nil {
		query = query.Where("published = ?", *f.Published)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}

	posts := []models.Post{}
	err := query.Preload("Author").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, Meta{}, err
	}
	if err := s.attachCounts(posts); err != nil {
		return nil, Meta{}, err
	}
	return posts, BuildMeta(total, p), nil
}

// GetFeed lists published posts only; other filters still apply.
func (s *PostService) GetFeed(p Pagination, f PostFilters) ([]models.Post, Meta, error) {
	published := true
	f.Published = &published
	return s.GetAll(p, f)
}

// Update applies a partial update and returns the updated post.
func (s *PostService) Update(id uint, upd PostUpdate) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if upd.Published != nil {
		fields["published"] = *upd.Published
	}
	if len(fields) == 0 {
		return &post, nil
	}
	if err := s.db.Model(&post).Updates(fields).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SetPublished flips only the published flag.
func (s *PostService) SetPublished(id uint, published bool) (*models.Post, error) {
	return s.Update(id, PostUpdate{Published: &published})
}

// Delete removes the post. Comments and likes go with it through the
// schema-level cascade. Deleting a missing post is a no-op.
func (s *PostService) Delete(id uint) error {
	return s.db.Delete(&models.Post{}, id).Error
}

// IsAuthor reports whether userID wrote the post. Returns ErrNotFound when
// the post does not exist.
func (s *PostService) IsAuthor(postID, userID uint) (bool, error) {
	var post models.Post
	if err := s.db.Select("author_id").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return post.AuthorID == userID, nil
}

// attachCounts fills LikeCount and CommentCount for a page of posts with
// one grouped query per table instead of per-row lookups.
func (s *PostService) attachCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	type countRow struct {
		PostID uint
		Total  int64
	}

	likeRows := []countRow{}
	err := s.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&likeRows).Error
	if err != nil {
		return err
	}
	commentRows := []countRow{}
	err = s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&commentRows).Error
	if err != nil {
		return err
	}

	likeCounts := make(map[uint]int64, len(likeRows))
	for _, row := range likeRows {
		likeCounts[row.PostID] = row.Total
	}
	commentCounts := make(map[uint]int64, len(commentRows))
	for _, row := range commentRows {
		commentCounts[row.PostID] = row.Total
	}
	for i := range posts {
		posts[i].LikeCount = likeCounts[posts[i].ID]
		posts[i].CommentCount = commentCounts[posts[i].ID]
	}
	return nil
}
