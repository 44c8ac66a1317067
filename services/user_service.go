package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/feedstack/feedstack/models"
)

// UserService wraps user persistence. Uniqueness of email and username is
// enforced by the store's unique indexes; a duplicate-key error is
// classified after the fact so callers get a precise conflict.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService instance.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserUpdate holds a partial update; nil fields are left unchanged.
type UserUpdate struct {
	Email     *string
	Username  *string
	Name      *string
	AvatarURL *string
	Bio       *string
}

// Create inserts a user. Returns ErrEmailTaken or ErrUsernameTaken when the
// corresponding unique index rejects the insert.
func (s *UserService) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return s.classifyConflict(user.Email, user.Username, 0)
		}
		return err
	}
	return nil
}

// GetByID returns the user or ErrNotFound.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the user with the given email or ErrNotFound.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	return s.getByField("email", email)
}

// GetByUsername returns the user with the given username or ErrNotFound.
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	return s.getByField("username", username)
}

func (s *UserService) getByField(column, value string) (*models.User, error) {
	var user models.User
	if err := s.db.Where(column+" = ?", value).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetAll returns one page of users, newest first.
func (s *UserService) GetAll(p Pagination) ([]models.User, Meta, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, Meta{}, err
	}
	users := []models.User{}
	err := s.db.Order("created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&users).Error
	if err != nil {
		return nil, Meta{}, err
	}
	return users, BuildMeta(total, p), nil
}

// Update applies a partial update and returns the updated user. Email and
// username collisions against other users surface as conflict errors.
func (s *UserService) Update(id uint, upd UserUpdate) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Username != nil {
		fields["username"] = *upd.Username
	}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(fields).Error; err != nil {
		if isDuplicate(err) {
			email, username := user.Email, user.Username
			if upd.Email != nil {
				email = *upd.Email
			}
			if upd.Username != nil {
				username = *upd.Username
			}
			return nil, s.classifyConflict(email, username, id)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user. Dependent posts, comments and likes go with it
// through the schema-level cascade. Deleting a missing user is a no-op.
func (s *UserService) Delete(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}

// classifyConflict decides which unique index a duplicate-key error came
// from. excludeID skips the user's own row during updates.
func (s *UserService) classifyConflict(email, username string, excludeID uint) error {
	var count int64
	q := s.db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err == nil && count > 0 {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
