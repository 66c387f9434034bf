// Package editor stages a single recipe's edits before they are committed to
// the store.
package editor

import (
	"strings"

	"recipebox/models"
)

// Mode is where the editor sits in its Closed/Creating/Editing cycle.
type Mode int

const (
	Closed Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Closed:
		return "closed"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return ""
	}
}

// Committer receives submitted recipes. *recipes.Store satisfies it.
type Committer interface {
	Upsert(r models.Recipe) []models.Recipe
}

type Editor struct {
	// Draft is edited directly by the form layer between Begin* and Submit.
	Draft models.Draft

	store     Committer
	ids       IDSource
	mode      Mode
	editingID int64
}

func New(store Committer, ids IDSource) *Editor {
	return &Editor{store: store, ids: ids}
}

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) IsOpen() bool { return e.mode != Closed }

// EditingID returns the id being edited; ok is false outside edit mode.
func (e *Editor) EditingID() (id int64, ok bool) {
	return e.editingID, e.mode == Editing
}

// BeginCreate opens the editor on an empty draft.
func (e *Editor) BeginCreate() {
	e.Draft = models.Draft{}
	e.editingID = 0
	e.mode = Creating
}

// BeginEdit opens the editor on r.
func (e *Editor) BeginEdit(r models.Recipe) {
	e.Draft = models.DraftOf(r)
	e.editingID = r.ID
	e.mode = Editing
}

// Cancel discards the draft and closes the editor.
func (e *Editor) Cancel() {
	e.reset()
}

// Validate reports the draft fields that are empty or whitespace only.
func (e *Editor) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", e.Draft.Name},
		{"prepTime", e.Draft.PrepTime},
		{"servings", e.Draft.Servings},
		{"ingredients", e.Draft.Ingredients},
		{"instructions", e.Draft.Instructions},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return nil
}

// Submit validates the draft and commits it. On a validation error the
// draft is kept and nothing is committed.
func (e *Editor) Submit() (models.Recipe, error) {
	if !e.IsOpen() {
		return models.Recipe{}, ErrEditorClosed
	}
	if err := e.Validate(); err != nil {
		return models.Recipe{}, err
	}

	id := e.editingID
	if e.mode == Creating {
		id = e.ids.NextID()
	}

	r := models.Recipe{
		ID:           id,
		Name:         e.Draft.Name,
		PrepTime:     e.Draft.PrepTime,
		Servings:     e.Draft.Servings,
		Ingredients:  models.SplitLines(e.Draft.Ingredients),
		Instructions: models.SplitLines(e.Draft.Instructions),
	}

	e.store.Upsert(r)
	e.reset()

	return r, nil
}

func (e *Editor) reset() {
	e.Draft = models.Draft{}
	e.editingID = 0
	e.mode = Closed
}
