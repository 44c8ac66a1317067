package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
)

// LikeService wraps the like relation. Likes carry no history: a like
// either exists for a (user, post) pair or it does not, and the composite
// unique index is the source of truth for "at most once".
type LikeService struct {
	db *gorm.DB
}

// NewLikeService creates a LikeService instance.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// ToggleResult reports the state after a toggle.
type ToggleResult struct {
	Liked bool         `json:"liked"`
	Like  *models.Like `json:"like,omitempty"`
}

// Toggle flips the like state for (userID, postID). If the pair exists the
// like is removed; otherwise one is created. The read and the write are
// separate round trips; when two toggles race, the loser's insert hits the
// unique index and comes back as ErrAlreadyLiked.
func (s *LikeService) Toggle(userID, postID uint) (*ToggleResult, error) {
	existing, err := s.GetByUserAndPost(userID, postID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if err := s.db.Delete(existing).Error; err != nil {
			return nil, err
		}
		return &ToggleResult{Liked: false}, nil
	}
	like, err := s.Like(userID, postID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{Liked: true, Like: like}, nil
}

// Like creates the like. The write goes straight to the store; a duplicate
// pair surfaces as ErrAlreadyLiked, a missing post as ErrNotFound.
func (s *LikeService) Like(userID, postID uint) (*models.Like, error) {
	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	like := models.Like{UserID: userID, PostID: postID}
	if err := s.db.Create(&like).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return &like, nil
}

// Unlike removes the like for (userID, postID). Removing a like that does
// not exist succeeds: the caller asked for a state, not a row.
func (s *LikeService) Unlike(userID, postID uint) error {
	return s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{}).Error
}

// HasLiked reports whether the pair exists.
func (s *LikeService) HasLiked(userID, postID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// GetByUserAndPost returns the like for the pair or ErrNotFound.
func (s *LikeService) GetByUserAndPost(userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := s.db.Where("user_id = ? AND post_id = ?", userID, postID).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &like, nil
}

// GetByPost returns one page of a post's likes, newest first, with the
// liking users embedded.
func (s *LikeService) GetByPost(postID uint, p Pagination) ([]models.Like, Meta, error) {
	var total int64
	if err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}
	likes := []models.Like{}
	err := s.db.Where("post_id = ?", postID).
		Preload("User").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&likes).Error
	if err != nil {
		return nil, Meta{}, err
	}
	return likes, BuildMeta(total, p), nil
}

// GetByUser returns one page of a user's likes, newest first, with the
// liked posts embedded.
func (s *LikeService) GetByUser(userID uint, p Pagination) ([]models.Like, Meta, error) {
	var total int64
	if err := s.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}
	likes := []models.Like{}
	err := s.db.Where("user_id = ?", userID).
		Preload("Post").
		Preload("Post.Author").
		Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&likes).Error
	if err != nil {
		return nil, Meta{}, err
	}
	return likes, BuildMeta(total, p), nil
}

// CountByPost counts the likes on one post.
func (s *LikeService) CountByPost(postID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// CountByPosts counts likes for every requested post in one grouped query.
// Every requested id is present in the result; ids with no likes map to 0.
func (s *LikeService) CountByPosts(postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	for _, id := range postIDs {
		counts[id] = 0
	}
	if len(postIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		PostID uint
		Total  int64
	}
	rows := []countRow{}
	err := s.db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

// HasLikedPosts reports, in one round trip, which of the requested posts
// the user has liked. Every requested id is present in the result; posts
// the user never liked map to false.
func (s *LikeService) HasLikedPosts(userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	for _, id := range postIDs {
		liked[id] = false
	}
	if len(postIDs) == 0 {
		return liked, nil
	}

	rows := []uint{}
	err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &rows).Error
	if err != nil {
		return nil, err
	}
	for _, id := range rows {
		liked[id] = true
	}
	return liked, nil
}
