package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/models"
	"github.com/fridgeraiders/backend/internal/types"
)

// ErrPreferencesExist signals that the user already has a stored filter set
// and should go through the update flow instead.
var ErrPreferencesExist = errors.New("preferences already saved")

// PreferenceService stores a user's default search filter set.
type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the stored filter set, or (nil, nil) when the user has none.
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*types.SearchFilters, error) {
	var pref models.Preference
	if err := s.db.WithContext(ctx).First(&pref, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	var filters types.SearchFilters
	if err := json.Unmarshal(pref.Filters, &filters); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}
	return &filters, nil
}

// Create inserts a new preference row; an existing row is a conflict.
func (s *PreferenceService) Create(ctx context.Context, userID uint, filters types.SearchFilters) error {
	payload, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	pref := models.Preference{UserID: userID, Filters: datatypes.JSON(payload)}
	if err := s.db.WithContext(ctx).Create(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPreferencesExist
		}
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// Update merges the supplied filters into the stored set, creating the row
// when none exists. Merge policy: a non-empty new value overrides the stored
// value for that key; empty new values leave stored values untouched.
func (s *PreferenceService) Update(ctx context.Context, userID uint, filters types.SearchFilters) error {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return s.Create(ctx, userID, filters)
	}

	merged := MergeFilters(*existing, filters)
	payload, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.Preference{}).
		Where("user_id = ?", userID).
		Update("filters", datatypes.JSON(payload))
	if result.Error != nil {
		return fmt.Errorf("updating preferences: %w", result.Error)
	}
	return nil
}

// MergeFilters applies the update-preferences merge policy.
func MergeFilters(old, update types.SearchFilters) types.SearchFilters {
	merged := old
	if len(update.Cuisine) > 0 {
		merged.Cuisine = update.Cuisine
	}
	if len(update.Diet) > 0 {
		merged.Diet = update.Diet
	}
	if len(update.Intolerances) > 0 {
		merged.Intolerances = update.Intolerances
	}
	if update.IncludeIngredients != "" {
		merged.IncludeIngredients = update.IncludeIngredients
	}
	if update.ExcludeIngredients != "" {
		merged.ExcludeIngredients = update.ExcludeIngredients
	}
	if update.MaxReadyTime != 0 {
		merged.MaxReadyTime = update.MaxReadyTime
	}
	if update.Number != 0 {
		merged.Number = update.Number
	}
	return merged
}
