package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/testdb"
)

func newRatingService(t *testing.T) (*RatingService, *gorm.DB, uuid.UUID) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	recipe, err := recipes.Create(context.Background(), validInput(), uuid.New())
	require.NoError(t, err)
	return NewRatingService(db, nil, zap.NewNop()), db, recipe.ID
}

func TestRateValidatesRange(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	ctx := context.Background()

	assert.True(t, IsValidation(svc.Rate(ctx, recipeID, uuid.New(), 0)))
	assert.True(t, IsValidation(svc.Rate(ctx, recipeID, uuid.New(), 6)))
	assert.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), 1))
	assert.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), 5))
}

func TestRateUnknownRecipe(t *testing.T) {
	svc, _, _ := newRatingService(t)

	err := svc.Rate(context.Background(), uuid.New(), uuid.New(), 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRateOverwritesExisting(t *testing.T) {
	svc, db, recipeID := newRatingService(t)
	user := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.Rate(ctx, recipeID, user, 5))
	require.NoError(t, svc.Rate(ctx, recipeID, user, 2))

	var ratings []models.Rating
	require.NoError(t, db.Where("recipe_id = ? AND user_id = ?", recipeID, user).Find(&ratings).Error)
	require.Len(t, ratings, 1)
	assert.Equal(t, 2, ratings[0].Rating)
}

func TestRateIdempotent(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	user := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.Rate(ctx, recipeID, user, 4))
	require.NoError(t, svc.Rate(ctx, recipeID, user, 4))

	count, err := svc.Count(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnrate(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	user := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.Rate(ctx, recipeID, user, 3))
	require.NoError(t, svc.Unrate(ctx, recipeID, user))

	count, err := svc.Count(ctx, recipeID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnrateAbsent(t *testing.T) {
	svc, _, recipeID := newRatingService(t)

	err := svc.Unrate(context.Background(), recipeID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAverage(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	ctx := context.Background()

	for _, value := range []int{1, 2, 3, 4, 5} {
		require.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), value))
	}

	avg, err := svc.Average(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, avg)
}

func TestAverageNoRatings(t *testing.T) {
	svc, _, recipeID := newRatingService(t)

	avg, err := svc.Average(context.Background(), recipeID)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

// Rounding is half-up at the second decimal: a mean of 2.25 reports as
// 2.3, not the banker's 2.2.
func TestAverageRoundsHalfUp(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	ctx := context.Background()

	for _, value := range []int{1, 2, 3, 3} {
		require.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), value))
	}

	avg, err := svc.Average(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, 2.3, avg)
}

func TestCount(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), 4))
	}

	count, err := svc.Count(ctx, recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUserRating(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	user := uuid.New()
	ctx := context.Background()

	// Absent rating is nil, never an error.
	rating, err := svc.UserRating(ctx, recipeID, user)
	require.NoError(t, err)
	assert.Nil(t, rating)

	require.NoError(t, svc.Rate(ctx, recipeID, user, 4))

	rating, err = svc.UserRating(ctx, recipeID, user)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 4, *rating)
}

func TestListForRecipe(t *testing.T) {
	svc, _, recipeID := newRatingService(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, svc.Rate(ctx, recipeID, uuid.New(), 5))
	}

	ratings, meta, err := svc.ListForRecipe(ctx, recipeID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, ratings, 10)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(15), meta.TotalItems)

	ratings, _, err = svc.ListForRecipe(ctx, recipeID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, ratings, 5)
}
