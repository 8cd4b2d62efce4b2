package api

import (
	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/pagination"
)

type CreateRecipeRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	PrepTime     int    `json:"prep_time"`
	CookTime     int    `json:"cook_time"`
	Servings     int    `json:"servings"`
	Difficulty   string `json:"difficulty"`
	Category     string `json:"category"`
	ImageURL     string `json:"image_url"`
}

// UpdateRecipeRequest is a partial update; omitted fields keep their
// stored values.
type UpdateRecipeRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	PrepTime     *int    `json:"prep_time"`
	CookTime     *int    `json:"cook_time"`
	Servings     *int    `json:"servings"`
	Difficulty   *string `json:"difficulty"`
	Category     *string `json:"category"`
	ImageURL     *string `json:"image_url"`
}

type RateRecipeRequest struct {
	Rating int `json:"rating"`
}

type CommentRequest struct {
	Body string `json:"body"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RecipeLinks struct {
	Self    string `json:"self"`
	Author  string `json:"author"`
	Ratings string `json:"ratings"`
}

// RecipeResponse is a recipe enriched with live rating aggregates. The
// free-text rendering of the stored ingredients is included for edit
// pre-population.
type RecipeResponse struct {
	models.Recipe
	IngredientsText string      `json:"ingredients_text"`
	TotalTime       int         `json:"total_time"`
	AverageRating   float64     `json:"average_rating"`
	RatingCount     int64       `json:"rating_count"`
	UserRating      *int        `json:"user_rating,omitempty"`
	Links           RecipeLinks `json:"_links"`
}

// Collection is the pagination envelope shared by all list endpoints.
type Collection struct {
	Items interface{}      `json:"items"`
	Meta  pagination.Meta  `json:"_meta"`
	Links pagination.Links `json:"_links"`
}
