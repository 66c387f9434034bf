package models

import "strings"

// Recipe is the single persisted entity. The JSON tags define the stored
// layout under the "recipes" key and must not change.
type Recipe struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	PrepTime     string   `json:"prepTime"`
	Servings     string   `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Draft holds the editable text form of a recipe. Ingredients and
// instructions are newline-joined.
type Draft struct {
	Name         string `json:"name"`
	PrepTime     string `json:"prepTime"`
	Servings     string `json:"servings"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
}

// DraftOf denormalizes a recipe back into editable text.
func DraftOf(r Recipe) Draft {
	return Draft{
		Name:         r.Name,
		PrepTime:     r.PrepTime,
		Servings:     r.Servings,
		Ingredients:  strings.Join(r.Ingredients, "\n"),
		Instructions: strings.Join(r.Instructions, "\n"),
	}
}

// SplitLines splits text on line breaks and drops blank lines.
func SplitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Clone returns a deep copy so callers cannot alias the store's slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = append([]string{}, r.Ingredients...)
	c.Instructions = append([]string{}, r.Instructions...)
	return c
}

// Normalize makes sure slices are not nil so they encode as [] rather than null.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
}
