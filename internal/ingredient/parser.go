// Package ingredient converts free-text ingredient blocks into structured
// records and back. Parsing is a best-effort heuristic over "amount unit
// ingredient" lines, not a grammar: a line like "2 large eggs beaten well"
// parses as amount="2", unit="large", ingredient="eggs beaten well". That
// lossiness is accepted.
package ingredient

import (
	"strings"

	"github.com/foodyshare/backend/internal/models"
)

// Parse splits a newline-delimited text block into structured ingredient
// records, preserving line order. Blank lines are dropped. Parse never
// fails; any input yields a (possibly empty) list.
func Parse(text string) models.IngredientList {
	list := models.IngredientList{}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		switch {
		case len(tokens) >= 3:
			list = append(list, models.Ingredient{
				Amount:     tokens[0],
				Unit:       tokens[1],
				Ingredient: strings.Join(tokens[2:], " "),
			})
		case len(tokens) == 2:
			list = append(list, models.Ingredient{
				Amount:     tokens[0],
				Ingredient: tokens[1],
			})
		default:
			list = append(list, models.Ingredient{Ingredient: tokens[0]})
		}
	}
	return list
}

// Render converts structured records back to "amount unit ingredient"
// lines for edit pre-population, omitting empty fields. It is a
// best-effort inverse of Parse: re-parsing the output yields the same
// number of records with the same ingredient fields, but original spacing
// is not preserved.
func Render(list models.IngredientList) string {
	lines := make([]string, 0, len(list))
	for _, ing := range list {
		lines = append(lines, renderLine(ing))
	}
	return strings.Join(lines, "\n")
}

// FlattenText renders the list as a single space-joined string so that
// ingredient substrings remain searchable even though ingredients are
// stored structured.
func FlattenText(list models.IngredientList) string {
	parts := make([]string, 0, len(list))
	for _, ing := range list {
		parts = append(parts, renderLine(ing))
	}
	return strings.Join(parts, " ")
}

func renderLine(ing models.Ingredient) string {
	fields := make([]string, 0, 3)
	for _, f := range []string{ing.Amount, ing.Unit, ing.Ingredient} {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return strings.Join(fields, " ")
}
