package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recipebox/editor"
	"recipebox/models"
)

const fmtField = " %s\n %s\n\n"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alertStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	savedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	noStyle      = lipgloss.NewStyle()

	focusedButton = focusedStyle.Render("[ Save Recipe ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Save Recipe"))
)

// field indexes: three single-line inputs, two textareas, then the button
const (
	fieldName = iota
	fieldPrepTime
	fieldServings
	fieldIngredients
	fieldInstructions
	fieldButton
)

// EditorModel is a bubbletea form over an open editor.Editor. The editor
// must have been opened with BeginCreate or BeginEdit before the program
// starts.
type EditorModel struct {
	editor     *editor.Editor
	focusIndex int
	inputs     []textinput.Model
	areas      []textarea.Model

	Alert     string
	Saved     *models.Recipe
	Cancelled bool
}

func NewEditorModel(e *editor.Editor) *EditorModel {
	m := &EditorModel{
		editor: e,
		inputs: make([]textinput.Model, 3),
		areas:  make([]textarea.Model, 2),
	}

	placeholders := []string{"e.g., Chocolate Chip Cookies", "e.g., 30 mins", "e.g., 4-6"}
	values := []string{e.Draft.Name, e.Draft.PrepTime, e.Draft.Servings}
	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = focusedStyle
		t.CharLimit = 256
		t.Placeholder = placeholders[i]
		t.SetValue(values[i])
		m.inputs[i] = t
	}

	areaPlaceholders := []string{"2 cups flour\n1 cup sugar\n2 eggs", "Preheat oven\nMix dry ingredients\nAdd wet ingredients"}
	areaValues := []string{e.Draft.Ingredients, e.Draft.Instructions}
	for i := range m.areas {
		a := textarea.New()
		a.Placeholder = areaPlaceholders[i]
		a.ShowLineNumbers = false
		a.SetHeight(6)
		a.SetValue(areaValues[i])
		m.areas[i] = a
	}

	m.focus()

	return m
}

func (m *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// syncDraft copies widget contents into the editor's draft.
func (m *EditorModel) syncDraft() {
	m.editor.Draft = models.Draft{
		Name:         m.inputs[fieldName].Value(),
		PrepTime:     m.inputs[fieldPrepTime].Value(),
		Servings:     m.inputs[fieldServings].Value(),
		Ingredients:  m.areas[0].Value(),
		Instructions: m.areas[1].Value(),
	}
}

func (m *EditorModel) focus() tea.Cmd {
	var cmds []tea.Cmd

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds = append(cmds, m.inputs[i].Focus())
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	for i := range m.areas {
		if fieldIngredients+i == m.focusIndex {
			cmds = append(cmds, m.areas[i].Focus())
			continue
		}
		m.areas[i].Blur()
	}

	return tea.Batch(cmds...)
}

func (m *EditorModel) submit() (tea.Model, tea.Cmd) {
	m.syncDraft()

	r, err := m.editor.Submit()
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		m.Alert = "Please fill in all fields"
		return m, nil
	}
	if err != nil {
		m.Alert = err.Error()
		return m, nil
	}

	m.Saved = &r

	return m, tea.Quit
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.editor.Cancel()
			m.Cancelled = true
			return m, tea.Quit

		case "ctrl+s":
			return m.submit()

		case "enter":
			if m.focusIndex == fieldButton {
				return m.submit()
			}
			if m.focusIndex < fieldIngredients {
				m.focusIndex++
				return m, m.focus()
			}

		case "tab", "shift+tab":
			if msg.String() == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > fieldButton {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = fieldButton
			}

			return m, m.focus()
		}
	}

	// Only focused widgets respond, so it's safe to update all of them.
	cmds := make([]tea.Cmd, 0, len(m.inputs)+len(m.areas))
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	for i := range m.areas {
		var cmd tea.Cmd
		m.areas[i], cmd = m.areas[i].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *EditorModel) View() string {
	if m.Saved != nil {
		return savedStyle.Render(fmt.Sprintf("\n  ✓ Saved %q\n\n", m.Saved.Name))
	}

	title := "New Recipe"
	if m.editor.Mode() == editor.Editing {
		title = "Edit Recipe"
	}

	s := focusedStyle.Bold(true).Render(title) + "\n\n"
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Recipe Name"), m.inputs[fieldName].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Prep Time"), m.inputs[fieldPrepTime].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Servings"), m.inputs[fieldServings].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Ingredients (one per line)"), m.areas[0].View())
	s += fmt.Sprintf(fmtField, blurredStyle.Render("Instructions (one step per line)"), m.areas[1].View())

	button := blurredButton
	if m.focusIndex == fieldButton {
		button = focusedButton
	}
	s += " " + button + "\n\n"

	if m.Alert != "" {
		s += alertStyle.Render(" "+m.Alert) + "\n\n"
	}

	s += blurredStyle.Render(" tab/shift+tab: navigate • ctrl+s: save • esc: cancel")

	return s
}
