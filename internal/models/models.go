package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultImageURL is used when a user signs up without a profile image.
const DefaultImageURL = "/static/no-image.png"

// User is a registered account. APIUsername and APIHash are the credentials
// issued by the Spoonacular connect endpoint at signup; shopping-list calls
// are authenticated with them. Users are hard-deleted so the cascade to
// recipes and preferences is real (no soft-delete column).
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	ImageURL     string `gorm:"not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	APIUsername  string `gorm:"not null"`
	APIHash      string `gorm:"not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Recipes    []Recipe    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Preference *Preference `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Recipe is a per-user saved/favourite reference to an external recipe, not
// recipe content. The external recipe id alone is the primary key, so a
// given recipe can only be held by one user at a time.
type Recipe struct {
	RecipeID  int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint  `gorm:"not null;index"`
	Favourite bool  `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// Preference stores a user's default search filters as a JSON payload.
// The user id is the primary key: at most one row per user.
type Preference struct {
	UserID    uint           `gorm:"primaryKey;autoIncrement:false"`
	Filters   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// All lists every model for schema migration.
func All() []interface{} {
	return []interface{}{&User{}, &Recipe{}, &Preference{}}
}
