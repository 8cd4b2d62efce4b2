package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe difficulty levels.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Categories lists the accepted recipe categories.
var Categories = []string{
	"Breakfast", "Lunch", "Dinner", "Dessert",
	"Snack", "Appetizer", "Beverage", "Other",
}

// Ingredient is one structured ingredient line: "2 cups flour" becomes
// {Amount: "2", Unit: "cups", Ingredient: "flour"}.
type Ingredient struct {
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
	Ingredient string `json:"ingredient"`
}

// IngredientList is a custom type persisting the structured ingredient
// sequence as a JSONB embedded document.
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"size:100;not null;index" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Ingredients  IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions string         `gorm:"type:text;not null" json:"instructions"`
	PrepTime     int            `gorm:"check:prep_time >= 0" json:"prep_time"`
	CookTime     int            `gorm:"check:cook_time >= 0" json:"cook_time"`
	Servings     int            `json:"servings"`
	Difficulty   string         `gorm:"size:20" json:"difficulty"`
	Category     string         `gorm:"size:50" json:"category"`
	ImageURL     string         `gorm:"size:200" json:"image_url"`
	Language     string         `gorm:"size:5" json:"language"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime returns prep plus cook time in minutes, treating unset as zero.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// Comment is a user comment on a recipe. Comments are deleted together
// with their recipe.
type Comment struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Body      string    `gorm:"size:500;not null" json:"body"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
