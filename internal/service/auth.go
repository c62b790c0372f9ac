package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/spoonacular"
	"github.com/fridgeraiders/backend/internal/types"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser is a retryable form error: pick another value.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// AuthService handles signup and login.
type AuthService struct {
	db    *gorm.DB
	spoon *spoonacular.Client
}

func NewAuthService(db *gorm.DB, spoon *spoonacular.Client) *AuthService {
	return &AuthService{db: db, spoon: spoon}
}

// Signup registers the user with the meal planner API, hashes the password,
// and inserts the row. The external call happens first, matching the
// original flow: without the issued credentials the account would be unable
// to use the shopping list at all.
func (s *AuthService) Signup(ctx context.Context, form types.SignupForm) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	creds, err := s.spoon.ConnectUser(ctx, spoonacular.ConnectUserRequest{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		return nil, err
	}

	imageURL := form.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := models.User{
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		ImageURL:     imageURL,
		PasswordHash: string(hashed),
		APIUsername:  creds.Username,
		APIHash:      creds.Hash,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies a username/password pair against the stored bcrypt
// hash and returns the matching user.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}
