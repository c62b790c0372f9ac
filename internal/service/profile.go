package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/types"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is a non-fatal form error on profile update.
	ErrUsernameTaken = errors.New("username already taken")
)

// ProfileService reads and updates user rows.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetUser loads a user by id.
func (s *ProfileService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return &user, nil
}

// UpdateUser edits profile fields in place. A username held by a different
// user is a non-fatal conflict; keeping your own username is fine.
func (s *ProfileService) UpdateUser(ctx context.Context, id uint, form types.UpdateUserForm) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	var holder models.User
	err = s.db.WithContext(ctx).Where("username = ?", form.Username).First(&holder).Error
	switch {
	case err == nil && holder.ID != id:
		return nil, ErrUsernameTaken
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("checking username: %w", err)
	}

	user.Username = form.Username
	user.FirstName = form.FirstName
	user.LastName = form.LastName
	user.Email = form.Email
	if form.ImageURL != "" {
		user.ImageURL = form.ImageURL
	} else {
		user.ImageURL = models.DefaultImageURL
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

// DeleteUser hard-deletes the user; recipe and preference rows go with it
// via the foreign-key cascade.
func (s *ProfileService) DeleteUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
