package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/pagination"
)

const averageCacheTTL = 5 * time.Minute

// RatingService maintains one rating per (user, recipe) pair and computes
// live aggregates. Averages are cached in Redis with a short TTL when a
// client is configured; a nil client disables caching.
type RatingService struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *zap.Logger
}

func NewRatingService(db *gorm.DB, cache *redis.Client, logger *zap.Logger) *RatingService {
	return &RatingService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// Rate records a 1-5 star rating. A repeat rating by the same user
// overwrites the prior value in place via an atomic upsert on the
// (user_id, recipe_id) unique index, so concurrent re-rates cannot
// produce duplicates. Idempotent under repeated identical calls.
func (s *RatingService) Rate(ctx context.Context, recipeID, userID uuid.UUID, value int) error {
	if value < 1 || value > 5 {
		return newValidationError("rating", "must be an integer between 1 and 5")
	}

	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&exists).Error; err != nil {
		return fmt.Errorf("check recipe: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("recipe %s: %w", recipeID, ErrNotFound)
	}

	rating := models.Rating{
		Rating:   value,
		UserID:   userID,
		RecipeID: recipeID,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&rating).Error
	if err != nil {
		return fmt.Errorf("rate recipe: %w", err)
	}

	s.invalidate(ctx, recipeID)
	return nil
}

// Unrate removes the requester's rating, or reports ErrNotFound when no
// rating exists.
func (s *RatingService) Unrate(ctx context.Context, recipeID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return fmt.Errorf("unrate recipe: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rating for recipe %s: %w", recipeID, ErrNotFound)
	}

	s.invalidate(ctx, recipeID)
	return nil
}

// Average returns the arithmetic mean rating rounded to one decimal
// place, or 0 when no ratings exist (including after the recipe and its
// ratings were deleted). Rounding is half-up: 2.25 becomes 2.3.
func (s *RatingService) Average(ctx context.Context, recipeID uuid.UUID) (float64, error) {
	if cached, ok := s.cachedAverage(ctx, recipeID); ok {
		return cached, nil
	}

	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}

	rounded := math.Floor(avg.Float64*10+0.5) / 10
	s.storeAverage(ctx, recipeID, rounded)
	return rounded, nil
}

// Count returns the number of ratings for a recipe.
func (s *RatingService) Count(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return count, nil
}

// UserRating returns the user's rating value, or nil when the user has
// not rated the recipe. Absence is not an error.
func (s *RatingService) UserRating(ctx context.Context, recipeID, userID uuid.UUID) (*int, error) {
	var rating models.Rating
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user rating: %w", err)
	}
	return &rating.Rating, nil
}

// ListForRecipe returns a newest-first page of ratings for a recipe.
func (s *RatingService) ListForRecipe(ctx context.Context, recipeID uuid.UUID, page, perPage int) ([]models.Rating, pagination.Meta, error) {
	perPage = pagination.Clamp(perPage)

	query := s.db.WithContext(ctx).Model(&models.Rating{}).Where("recipe_id = ?", recipeID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count ratings: %w", err)
	}

	meta := pagination.NewMeta(total, page, perPage)
	offset, limit := pagination.Slice(total, page, perPage)
	if limit == 0 {
		return []models.Rating{}, meta, nil
	}

	var ratings []models.Rating
	if err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&ratings).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, meta, nil
}

// Forget drops the cached aggregate for a recipe, used when the recipe
// and its ratings are deleted together.
func (s *RatingService) Forget(ctx context.Context, recipeID uuid.UUID) {
	s.invalidate(ctx, recipeID)
}

func averageCacheKey(recipeID uuid.UUID) string {
	return "ratings:avg:" + recipeID.String()
}

func (s *RatingService) cachedAverage(ctx context.Context, recipeID uuid.UUID) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	value, err := s.cache.Get(ctx, averageCacheKey(recipeID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("rating cache read failed", zap.Error(err))
		}
		return 0, false
	}
	avg, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return avg, true
}

func (s *RatingService) storeAverage(ctx context.Context, recipeID uuid.UUID, avg float64) {
	if s.cache == nil {
		return
	}
	value := strconv.FormatFloat(avg, 'f', 1, 64)
	if err := s.cache.Set(ctx, averageCacheKey(recipeID), value, averageCacheTTL).Err(); err != nil {
		s.logger.Warn("rating cache write failed", zap.Error(err))
	}
}

func (s *RatingService) invalidate(ctx context.Context, recipeID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, averageCacheKey(recipeID)).Err(); err != nil {
		s.logger.Warn("rating cache invalidation failed", zap.Error(err))
	}
}
