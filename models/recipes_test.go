package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"blank lines dropped", "a\n\nb\n", []string{"a", "b"}},
		{"crlf", "Water\r\nSalt\r\n", []string{"Water", "Salt"}},
		{"whitespace only line", "a\n   \n\tb", []string{"a", "\tb"}},
		{"empty", "", []string{}},
		{"single", "Boil", []string{"Boil"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestDraftOf(t *testing.T) {
	r := Recipe{
		ID:           7,
		Name:         "Soup",
		PrepTime:     "20 mins",
		Servings:     "2",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: []string{"Boil", "Season"},
	}

	d := DraftOf(r)
	assert.Equal(t, Draft{
		Name:         "Soup",
		PrepTime:     "20 mins",
		Servings:     "2",
		Ingredients:  "Water\nSalt",
		Instructions: "Boil\nSeason",
	}, d)
	assert.Equal(t, r.Ingredients, SplitLines(d.Ingredients))
}

func TestRecipe_Clone(t *testing.T) {
	r := Recipe{ID: 1, Ingredients: []string{"a"}, Instructions: []string{"b"}}
	c := r.Clone()
	c.Ingredients[0] = "changed"

	assert.Equal(t, "a", r.Ingredients[0])
}

func TestRecipe_Normalize(t *testing.T) {
	var r Recipe
	r.Normalize()

	assert.NotNil(t, r.Ingredients)
	assert.NotNil(t, r.Instructions)
}
