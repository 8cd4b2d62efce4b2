package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/foodyshare/backend/config"
	"github.com/foodyshare/backend/internal/database"
	"github.com/foodyshare/backend/internal/models"
	"github.com/foodyshare/backend/internal/search"
	"github.com/foodyshare/backend/internal/service"
)

var samples = []service.CreateRecipeInput{
	{
		Title:       "Classic Pancakes",
		Description: "Fluffy breakfast pancakes",
		Ingredients: "2 cups flour\n2 tbsp sugar\n2 eggs\n1.5 cups milk\n1 pinch salt",
		Instructions: "Whisk the dry ingredients. Beat in eggs and milk. " +
			"Cook on a hot griddle until bubbles form, then flip.",
		PrepTime:   10,
		CookTime:   15,
		Servings:   4,
		Difficulty: models.DifficultyEasy,
		Category:   "Breakfast",
	},
	{
		Title:       "Spaghetti Carbonara",
		Description: "Roman pasta with eggs and guanciale",
		Ingredients: "400 g spaghetti\n150 g guanciale\n4 egg yolks\n50 g pecorino\nblack pepper",
		Instructions: "Crisp the guanciale. Cook the pasta. Toss off the heat " +
			"with the yolks, cheese and pasta water until creamy.",
		PrepTime:   10,
		CookTime:   20,
		Servings:   4,
		Difficulty: models.DifficultyMedium,
		Category:   "Dinner",
	},
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	user := models.User{Username: "demo", Email: "demo@foody.local", PasswordHash: "*"}
	if err := db.Where("email = ?", user.Email).FirstOrCreate(&user).Error; err != nil {
		logger.Fatal("failed to create seed user", zap.Error(err))
	}

	recipes := service.NewRecipeService(db, search.Noop{}, logger)
	ctx := context.Background()
	for _, input := range samples {
		recipe, err := recipes.Create(ctx, input, user.ID)
		if err != nil {
			logger.Fatal("failed to seed recipe", zap.String("title", input.Title), zap.Error(err))
		}
		logger.Info("seeded recipe", zap.String("id", recipe.ID.String()), zap.String("title", recipe.Title))
	}
}
