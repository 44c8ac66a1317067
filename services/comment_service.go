package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
)

// CommentService wraps comment persistence. Comments form a two-level
// tree: top-level comments and their direct replies.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create inserts a comment after verifying the post exists, then returns
// it with the author embedded.
func (s *CommentService) Create(comment *models.Comment) error {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	if err := s.db.Create(comment).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").First(comment, comment.ID).Error
}

// CreateReply inserts a reply under parentID. The reply's PostID is always
// inherited from the parent, whatever the caller supplied, so a reply can
// never land on a different post than its parent.
func (s *CommentService) CreateReply(parentID uint, reply *models.Comment) error {
	var parent models.Comment
	if err := s.db.First(&parent, parentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	reply.ParentID = &parent.ID
	reply.PostID = parent.PostID
	if err := s.db.Create(reply).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").First(reply, reply.ID).Error
}

// GetByID returns the comment with its author and direct replies, replies
// oldest first with their authors.
func (s *CommentService) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Author").
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetByPost returns one page of a post's top-level comments, newest first,
// each with its replies attached oldest first.
func (s *CommentService) GetByPost(postID uint, p Pagination) ([]models.Comment, Meta, error) {
	base := s.db.Model(&models.Comment{}).Where("post_id = ? AND parent_id IS NULL", postID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}

	comments := []models.Comment{}
	err := s.db.Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, Meta{}, err
	}
	return comments, BuildMeta(total, p), nil
}

// GetByAuthor returns one page of comments by one author, any nesting
// level, newest first.
func (s *CommentService) GetByAuthor(authorID uint, p Pagination) ([]models.Comment, Meta, error) {
	var total int64
	if err := s.db.Model(&models.Comment{}).Where("author_id = ?", authorID).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}
	comments := []models.Comment{}
	err := s.db.Where("author_id = ?", authorID).
		Preload("Author").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&comments).Error
	if err != nil {
		return nil, Meta{}, err
	}
	return comments, BuildMeta(total, p), nil
}

// Update replaces the comment's content and returns the updated comment.
func (s *CommentService) Update(id uint, content string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("Author").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.db.Model(&comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment and its replies in one transaction, so the
// outcome is the same on every backend regardless of foreign key
// enforcement.
func (s *CommentService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}

// CountByPost counts all comments on a post, replies included.
func (s *CommentService) CountByPost(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountReplies counts the direct replies of a comment.
func (s *CommentService) CountReplies(parentID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}
