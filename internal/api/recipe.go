package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodyshare/backend/internal/ingredient"
	"github.com/foodyshare/backend/internal/middleware"
	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/pagination"
	"github.com/foodyshare/backend/internal/service"
)

type RecipeHandler struct {
	recipes  *service.RecipeService
	ratings  *service.RatingService
	searcher *service.SearchService
}

func NewRecipeHandler(recipes *service.RecipeService, ratings *service.RatingService, searcher *service.SearchService) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		ratings:  ratings,
		searcher: searcher,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/categories", h.Categories)
		recipes.GET("/difficulties", h.Difficulties)
		recipes.GET("/:id", h.GetRecipe)
		if limiter != nil {
			recipes.POST("", limiter.Middleware(), h.CreateRecipe)
		} else {
			recipes.POST("", h.CreateRecipe)
		}
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.GET("/:id/ratings", h.ListRatings)
		recipes.POST("/:id/ratings", h.RateRecipe)
		recipes.DELETE("/:id/ratings", h.UnrateRecipe)
		recipes.GET("/:id/comments", h.ListComments)
		recipes.POST("/:id/comments", h.AddComment)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, perPage := pageParams(c)

	filter := service.ListFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}
	if author := c.Query("author_id"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author_id"})
			return
		}
		filter.AuthorID = &authorID
	}

	recipes, meta, err := h.recipes.List(c.Request.Context(), filter, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	query := url.Values{}
	for _, key := range []string{"category", "difficulty", "author_id"} {
		if v := c.Query(key); v != "" {
			query.Set(key, v)
		}
	}
	c.JSON(http.StatusOK, h.collection(c, recipes, meta, "/api/v1/recipes", query))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeResponse(c, recipe))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), service.CreateRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Location", "/api/v1/recipes/"+recipe.ID.String())
	c.JSON(http.StatusCreated, h.recipeResponse(c, recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, service.UpdateRecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Difficulty:   req.Difficulty,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeResponse(c, recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}
	h.ratings.Forget(c.Request.Context(), id)

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	page, perPage := pageParams(c)

	recipes, meta, err := h.searcher.Search(c.Request.Context(), c.Query("q"), page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	query := url.Values{"q": []string{c.Query("q")}}
	c.JSON(http.StatusOK, h.collection(c, recipes, meta, "/api/v1/recipes/search", query))
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Overwriting an existing rating is an update, not a creation.
	status := http.StatusCreated
	if existing, err := h.ratings.UserRating(c.Request.Context(), id, userID); err == nil && existing != nil {
		status = http.StatusOK
	}

	if err := h.ratings.Rate(c.Request.Context(), id, userID, req.Rating); err != nil {
		writeError(c, err)
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, h.recipeResponse(c, recipe))
}

func (h *RecipeHandler) UnrateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.ratings.Unrate(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListRatings(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	ratings, meta, err := h.ratings.ListForRecipe(c.Request.Context(), id, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	basePath := "/api/v1/recipes/" + id.String() + "/ratings"
	c.JSON(http.StatusOK, Collection{
		Items: ratings,
		Meta:  meta,
		Links: pagination.NewLinks(basePath, nil, meta),
	})
}

func (h *RecipeHandler) ListComments(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	page, perPage := pageParams(c)

	comments, meta, err := h.recipes.ListComments(c.Request.Context(), id, page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	basePath := "/api/v1/recipes/" + id.String() + "/comments"
	c.JSON(http.StatusOK, Collection{
		Items: comments,
		Meta:  meta,
		Links: pagination.NewLinks(basePath, nil, meta),
	})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.recipes.AddComment(c.Request.Context(), id, userID, req.Body)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *RecipeHandler) Categories(c *gin.Context) {
	categories, err := h.recipes.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func (h *RecipeHandler) Difficulties(c *gin.Context) {
	difficulties, err := h.recipes.Difficulties(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"difficulties": difficulties, "count": len(difficulties)})
}

// recipeResponse enriches a recipe with live rating aggregates and the
// requesting user's own rating when authenticated.
func (h *RecipeHandler) recipeResponse(c *gin.Context, recipe *models.Recipe) RecipeResponse {
	ctx := c.Request.Context()

	avg, err := h.ratings.Average(ctx, recipe.ID)
	if err != nil {
		avg = 0
	}
	count, err := h.ratings.Count(ctx, recipe.ID)
	if err != nil {
		count = 0
	}

	resp := RecipeResponse{
		Recipe:          *recipe,
		IngredientsText: ingredient.Render(recipe.Ingredients),
		TotalTime:       recipe.TotalTime(),
		AverageRating:   avg,
		RatingCount:     count,
		Links: RecipeLinks{
			Self:    "/api/v1/recipes/" + recipe.ID.String(),
			Author:  "/api/v1/users/" + recipe.UserID.String(),
			Ratings: "/api/v1/recipes/" + recipe.ID.String() + "/ratings",
		},
	}

	if userID, ok := middleware.CurrentUserID(c); ok {
		if rating, err := h.ratings.UserRating(ctx, recipe.ID, userID); err == nil {
			resp.UserRating = rating
		}
	}
	return resp
}

func (h *RecipeHandler) collection(c *gin.Context, recipes []models.Recipe, meta pagination.Meta, basePath string, query url.Values) Collection {
	items := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		items = append(items, h.recipeResponse(c, &recipes[i]))
	}
	return Collection{
		Items: items,
		Meta:  meta,
		Links: pagination.NewLinks(basePath, query, meta),
	}
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(pagination.DefaultPerPage)))
	if err != nil {
		perPage = pagination.DefaultPerPage
	}
	return page, pagination.Clamp(perPage)
}
