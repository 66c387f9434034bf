package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"recipebox/models"
)

const EmptyMessage = "No recipes yet. Add your first recipe to get started!"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1).
			MarginBottom(1)
)

// RenderList renders every recipe as a card, or the empty-state message.
func RenderList(list []models.Recipe) string {
	if len(list) == 0 {
		return metaStyle.Render(EmptyMessage) + "\n"
	}

	var b strings.Builder
	for _, r := range list {
		b.WriteString(cardStyle.Render(renderRecipe(r)))
		b.WriteString("\n")
	}

	return b.String()
}

func renderRecipe(r models.Recipe) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("#%d • %s • %s servings", r.ID, r.PrepTime, r.Servings)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Ingredients:"))
	b.WriteString("\n")
	for _, ing := range r.Ingredients {
		b.WriteString("  • " + ing + "\n")
	}

	b.WriteString(sectionStyle.Render("Instructions:"))
	for i, step := range r.Instructions {
		b.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
	}

	return b.String()
}
