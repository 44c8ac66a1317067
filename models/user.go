package models

import "time"

// User represents a registered account. Email and username are each
// globally unique.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username  string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Name      string    `gorm:"size:128" json:"name,omitempty"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url,omitempty"`
	Bio       string    `gorm:"size:512" json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
	Likes    []Like    `json:"-"`
}
