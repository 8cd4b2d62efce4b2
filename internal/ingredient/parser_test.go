package ingredient

import (
	"testing"

	"github.com/foodyshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseThreeTokens(t *testing.T) {
	list := Parse("2 cups flour")
	assert.Len(t, list, 1)
	assert.Equal(t, models.Ingredient{Amount: "2", Unit: "cups", Ingredient: "flour"}, list[0])
}

func TestParseRemainderJoined(t *testing.T) {
	list := Parse("2 large eggs beaten well")
	assert.Len(t, list, 1)
	assert.Equal(t, "2", list[0].Amount)
	assert.Equal(t, "large", list[0].Unit)
	assert.Equal(t, "eggs beaten well", list[0].Ingredient)
}

func TestParseTwoTokens(t *testing.T) {
	list := Parse("3 eggs")
	assert.Len(t, list, 1)
	assert.Equal(t, models.Ingredient{Amount: "3", Unit: "", Ingredient: "eggs"}, list[0])
}

func TestParseSingleToken(t *testing.T) {
	list := Parse("salt")
	assert.Len(t, list, 1)
	assert.Equal(t, models.Ingredient{Amount: "", Unit: "", Ingredient: "salt"}, list[0])
}

func TestParseDropsBlankLines(t *testing.T) {
	list := Parse("2 cups flour\n\n   \n1 tsp salt\n")
	assert.Len(t, list, 2)
	assert.Equal(t, "flour", list[0].Ingredient)
	assert.Equal(t, "salt", list[1].Ingredient)
}

func TestParseEmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("   \n  \n"))
}

func TestParsePreservesOrder(t *testing.T) {
	list := Parse("1 cup sugar\n2 cups flour\n3 tbsp butter")
	assert.Equal(t, []string{"sugar", "flour", "butter"},
		[]string{list[0].Ingredient, list[1].Ingredient, list[2].Ingredient})
}

func TestRenderOmitsEmptyFields(t *testing.T) {
	list := models.IngredientList{
		{Amount: "2", Unit: "cups", Ingredient: "flour"},
		{Amount: "3", Ingredient: "eggs"},
		{Ingredient: "salt"},
	}
	assert.Equal(t, "2 cups flour\n3 eggs\nsalt", Render(list))
}

// Parsing, rendering and re-parsing must be stable on record count and
// ingredient fields, even though spacing is not byte-preserved.
func TestParseRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"2 cups flour\n1 tsp salt\n3 eggs",
		"  2   cups flour  ",
		"salt\npepper",
		"2 large eggs beaten well",
	}
	for _, input := range inputs {
		first := Parse(input)
		second := Parse(Render(first))
		assert.Len(t, second, len(first), "input: %q", input)
		for i := range first {
			assert.Equal(t, first[i].Ingredient, second[i].Ingredient, "input: %q", input)
		}
	}
}

func TestFlattenText(t *testing.T) {
	list := models.IngredientList{
		{Amount: "2", Unit: "cups", Ingredient: "flour"},
		{Ingredient: "salt"},
	}
	assert.Equal(t, "2 cups flour salt", FlattenText(list))
}
