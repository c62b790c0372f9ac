package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/fridgeraiders/backend/internal/models"
)

var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrRecipeAlreadySaved = errors.New("recipe already saved")
)

// RecipeService manages the per-user saved/favourite recipe references.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Save records a recipe for the user with favourite off.
func (s *RecipeService) Save(ctx context.Context, userID uint, recipeID int64) error {
	recipe := models.Recipe{RecipeID: recipeID, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRecipeAlreadySaved
		}
		return fmt.Errorf("saving recipe: %w", err)
	}
	return nil
}

// SetFavourite flips the favourite flag on a saved recipe.
func (s *RecipeService) SetFavourite(ctx context.Context, recipeID int64, favourite bool) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "recipe_id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("loading recipe: %w", err)
	}

	recipe.Favourite = favourite
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, fmt.Errorf("updating recipe: %w", err)
	}
	return &recipe, nil
}

// ListByUser returns all recipes the user has saved.
func (s *RecipeService) ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// ListFavourites returns the user's favourited recipes.
func (s *RecipeService) ListFavourites(ctx context.Context, userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("user_id = ? AND favourite = ?", userID, true).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("listing favourites: %w", err)
	}
	return recipes, nil
}

// RecipeIDs extracts the external ids from saved rows.
func RecipeIDs(recipes []models.Recipe) []int64 {
	ids := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.RecipeID)
	}
	return ids
}

// FavouriteIDs extracts the external ids of favourited rows.
func FavouriteIDs(recipes []models.Recipe) []int64 {
	var ids []int64
	for _, r := range recipes {
		if r.Favourite {
			ids = append(ids, r.RecipeID)
		}
	}
	return ids
}
