package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/foodyshare/backend/internal/ingredient"
	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/pagination"
	"github.com/foodyshare/backend/internal/search"
)

// RecipeService owns persisted recipe records: create/read/update/delete
// with ownership checks, filtered listing, and index notification after
// each committed mutation.
type RecipeService struct {
	db     *gorm.DB
	index  search.Index
	logger *zap.Logger
}

func NewRecipeService(db *gorm.DB, index search.Index, logger *zap.Logger) *RecipeService {
	if index == nil {
		index = search.Noop{}
	}
	return &RecipeService{
		db:     db,
		index:  index,
		logger: logger,
	}
}

// CreateRecipeInput carries the fields of a recipe submission. Ingredients
// is the free-text newline-delimited block; it is parsed into structured
// records before persisting.
type CreateRecipeInput struct {
	Title        string
	Description  string
	Ingredients  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Category     string
	ImageURL     string
}

// UpdateRecipeInput is a partial update; nil fields are left unchanged.
type UpdateRecipeInput struct {
	Title        *string
	Description  *string
	Ingredients  *string
	Instructions *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Difficulty   *string
	Category     *string
	ImageURL     *string
}

// ListFilter is a conjunction of optional equality filters.
type ListFilter struct {
	Category   string
	Difficulty string
	AuthorID   *uuid.UUID
}

// Create validates and persists a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, input CreateRecipeInput, ownerID uuid.UUID) (*models.Recipe, error) {
	for field, value := range map[string]string{
		"title":        input.Title,
		"ingredients":  input.Ingredients,
		"instructions": input.Instructions,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, newValidationError(field, "must not be empty")
		}
	}
	if err := validateAttributes(input.Difficulty, input.Category, input.PrepTime, input.CookTime, input.Servings); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Ingredients:  ingredient.Parse(input.Ingredients),
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		Difficulty:   input.Difficulty,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		Language:     detectLanguage(input.Title + " " + input.Description),
		UserID:       ownerID,
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	var changes search.ChangeSet
	changes.Upsert(indexDocument(recipe))
	s.notifyIndex(ctx, &changes)

	return recipe, nil
}

// Get returns the recipe with the given id, or ErrNotFound.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recipe %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &recipe, nil
}

// Update applies a partial update. Only the owner may update a recipe;
// anyone else gets ErrForbidden and the record is left unchanged.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput, requesterID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != requesterID {
		return nil, fmt.Errorf("recipe %s is not owned by %s: %w", id, requesterID, ErrForbidden)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, newValidationError("title", "must not be empty")
		}
		recipe.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Ingredients != nil {
		if strings.TrimSpace(*input.Ingredients) == "" {
			return nil, newValidationError("ingredients", "must not be empty")
		}
		recipe.Ingredients = ingredient.Parse(*input.Ingredients)
	}
	if input.Instructions != nil {
		if strings.TrimSpace(*input.Instructions) == "" {
			return nil, newValidationError("instructions", "must not be empty")
		}
		recipe.Instructions = *input.Instructions
	}
	if input.PrepTime != nil {
		recipe.PrepTime = *input.PrepTime
	}
	if input.CookTime != nil {
		recipe.CookTime = *input.CookTime
	}
	if input.Servings != nil {
		recipe.Servings = *input.Servings
	}
	if input.Difficulty != nil {
		recipe.Difficulty = *input.Difficulty
	}
	if input.Category != nil {
		recipe.Category = *input.Category
	}
	if input.ImageURL != nil {
		recipe.ImageURL = *input.ImageURL
	}
	if err := validateAttributes(recipe.Difficulty, recipe.Category, recipe.PrepTime, recipe.CookTime, recipe.Servings); err != nil {
		return nil, err
	}
	if input.Title != nil || input.Description != nil {
		recipe.Language = detectLanguage(recipe.Title + " " + recipe.Description)
	}

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	var changes search.ChangeSet
	changes.Upsert(indexDocument(recipe))
	s.notifyIndex(ctx, &changes)

	return recipe, nil
}

// Delete removes a recipe and cascades to its ratings and comments in one
// transaction. Only the owner may delete.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != requesterID {
		return fmt.Errorf("recipe %s is not owned by %s: %w", id, requesterID, ErrForbidden)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}

	var changes search.ChangeSet
	changes.Remove(id.String())
	s.notifyIndex(ctx, &changes)

	return nil
}

// List returns a newest-first page of recipes matching the filter.
func (s *RecipeService) List(ctx context.Context, filter ListFilter, page, perPage int) ([]models.Recipe, pagination.Meta, error) {
	perPage = pagination.Clamp(perPage)

	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.AuthorID != nil {
		query = query.Where("user_id = ?", *filter.AuthorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count recipes: %w", err)
	}

	meta := pagination.NewMeta(total, page, perPage)
	offset, limit := pagination.Slice(total, page, perPage)
	if limit == 0 {
		return []models.Recipe{}, meta, nil
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&recipes).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, meta, nil
}

// Categories returns the distinct categories in use.
func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "category")
}

// Difficulties returns the distinct difficulties in use.
func (s *RecipeService) Difficulties(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "difficulty")
}

func (s *RecipeService) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where(column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

// AddComment attaches a comment to a recipe.
func (s *RecipeService) AddComment(ctx context.Context, recipeID, userID uuid.UUID, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, newValidationError("body", "must not be empty")
	}
	if _, err := s.Get(ctx, recipeID); err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Body:     strings.TrimSpace(body),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a newest-first page of comments for a recipe.
func (s *RecipeService) ListComments(ctx context.Context, recipeID uuid.UUID, page, perPage int) ([]models.Comment, pagination.Meta, error) {
	perPage = pagination.Clamp(perPage)

	query := s.db.WithContext(ctx).Model(&models.Comment{}).Where("recipe_id = ?", recipeID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("count comments: %w", err)
	}

	meta := pagination.NewMeta(total, page, perPage)
	offset, limit := pagination.Slice(total, page, perPage)
	if limit == 0 {
		return []models.Comment{}, meta, nil
	}

	var comments []models.Comment
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error; err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list comments: %w", err)
	}
	return comments, meta, nil
}

// notifyIndex forwards the change set once the mutation has committed.
// Index failures are logged, not surfaced: the database fallback keeps
// search functional while the index is behind.
func (s *RecipeService) notifyIndex(ctx context.Context, changes *search.ChangeSet) {
	if changes.Empty() {
		return
	}
	if err := changes.Flush(ctx, s.index); err != nil {
		s.logger.Warn("search index update failed", zap.Error(err))
	}
}

func indexDocument(r *models.Recipe) search.Document {
	return search.Document{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  ingredient.FlattenText(r.Ingredients),
		Instructions: r.Instructions,
		Category:     r.Category,
	}
}

func validateAttributes(difficulty, category string, prepTime, cookTime, servings int) error {
	if difficulty != "" && !contains(models.Difficulties, difficulty) {
		return newValidationError("difficulty", "must be one of "+strings.Join(models.Difficulties, ", "))
	}
	if category != "" && !contains(models.Categories, category) {
		return newValidationError("category", "must be one of "+strings.Join(models.Categories, ", "))
	}
	if prepTime < 0 {
		return newValidationError("prep_time", "must not be negative")
	}
	if cookTime < 0 {
		return newValidationError("cook_time", "must not be negative")
	}
	if servings < 0 {
		return newValidationError("servings", "must be a positive integer")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func detectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
