package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/testdb"
)

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewSearchService(testdb.New(t), &fakeIndex{}, zap.NewNop())

	_, _, err := svc.Search(context.Background(), "", 1, 10)
	assert.True(t, IsValidation(err))

	_, _, err = svc.Search(context.Background(), "   ", 1, 10)
	assert.True(t, IsValidation(err))
}

func TestSearchIndexedModePreservesOrder(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()
	owner := uuid.New()

	var created []*models.Recipe
	for _, title := range []string{"Apple Pie", "Banana Bread", "Cherry Tart"} {
		input := validInput()
		input.Title = title
		recipe, err := recipes.Create(ctx, input, owner)
		require.NoError(t, err)
		created = append(created, recipe)
	}

	// Relevance order from the index differs from timestamp order and
	// must win.
	idx := &fakeIndex{
		queryIDs: []string{created[2].ID.String(), created[0].ID.String()},
		total:    2,
	}
	svc := NewSearchService(db, idx, zap.NewNop())

	results, meta, err := svc.Search(ctx, "pie", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Cherry Tart", results[0].Title)
	assert.Equal(t, "Apple Pie", results[1].Title)
	assert.Equal(t, int64(2), meta.TotalItems)
}

func TestSearchIndexedModeSkipsStaleIDs(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, validInput(), uuid.New())
	require.NoError(t, err)

	idx := &fakeIndex{
		queryIDs: []string{uuid.New().String(), recipe.ID.String()},
		total:    2,
	}
	svc := NewSearchService(db, idx, zap.NewNop())

	results, _, err := svc.Search(ctx, "pancakes", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, recipe.ID, results[0].ID)
}

func TestSearchFallsBackOnZeroTotal(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	input := validInput()
	input.Ingredients = "1 tsp paprika\n2 cups flour"
	_, err := recipes.Create(ctx, input, uuid.New())
	require.NoError(t, err)

	// Index knows nothing about the recipe; the database substring scan
	// must still find it through the stored ingredient text.
	svc := NewSearchService(db, &fakeIndex{total: 0}, zap.NewNop())

	results, meta, err := svc.Search(ctx, "paprika", 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), meta.TotalItems)
}

func TestSearchFallsBackOnIndexError(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	_, err := recipes.Create(ctx, validInput(), uuid.New())
	require.NoError(t, err)

	svc := NewSearchService(db, &fakeIndex{queryErr: errors.New("connection refused")}, zap.NewNop())

	results, _, err := svc.Search(ctx, "pancakes", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchFallbackIsCaseInsensitive(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	_, err := recipes.Create(ctx, validInput(), uuid.New())
	require.NoError(t, err)

	svc := NewSearchService(db, &fakeIndex{}, zap.NewNop())

	results, _, err := svc.Search(ctx, "PANCAKES", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchFallbackMatchesInstructionsAndCategory(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	input := validInput()
	input.Instructions = "Simmer gently until reduced."
	_, err := recipes.Create(ctx, input, uuid.New())
	require.NoError(t, err)

	svc := NewSearchService(db, &fakeIndex{}, zap.NewNop())

	results, _, err := svc.Search(ctx, "simmer", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, _, err = svc.Search(ctx, "breakfast", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchFallbackPagination(t *testing.T) {
	db := testdb.New(t)
	recipes := NewRecipeService(db, nil, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := recipes.Create(ctx, validInput(), uuid.New())
		require.NoError(t, err)
	}

	svc := NewSearchService(db, &fakeIndex{}, zap.NewNop())

	results, meta, err := svc.Search(ctx, "pancakes", 1, 10)
	require.NoError(t, err)
	assert.Len(t, results, 10)
	assert.Equal(t, 3, meta.TotalPages)

	results, _, err = svc.Search(ctx, "pancakes", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchFallbackNoMatches(t *testing.T) {
	svc := NewSearchService(testdb.New(t), &fakeIndex{}, zap.NewNop())

	results, meta, err := svc.Search(context.Background(), "nonexistent", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, meta.TotalItems)
}
