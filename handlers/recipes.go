package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"recipebox/editor"
	"recipebox/models"
	"recipebox/recipes"
)

// Recipes serves the recipe collection over HTTP.
type Recipes struct {
	Store *recipes.Store
	IDs   editor.IDSource
	Log   zerolog.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// recipeID reads the "id" query parameter, writing a 400 when it is absent
// or not a number.
func recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		http.Error(w, "Missing 'id' query parameter", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "Invalid 'id' query parameter", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

func (h *Recipes) GetRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.List())
}

func (h *Recipes) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.Store.Get(id)
	if errors.Is(err, recipes.ErrNotFound) {
		http.Error(w, "No matching recipe found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// submit runs the draft in the request body through an editor that has
// already been opened by begin.
func (h *Recipes) submit(w http.ResponseWriter, r *http.Request, begin func(e *editor.Editor), status int) {
	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		h.Log.Debug().Err(err).Msg("Failed to decode request body")
		return
	}

	e := editor.New(h.Store, h.IDs)
	begin(e)
	e.Draft = draft

	recipe, err := e.Submit()
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		http.Error(w, verr.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to save recipe", http.StatusInternalServerError)
		h.Log.Error().Err(err).Msg("Failed to save recipe")
		return
	}

	writeJSON(w, status, recipe)
}

func (h *Recipes) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, (*editor.Editor).BeginCreate, http.StatusCreated)
}

// UpdateRecipe replaces every field of an existing recipe.
func (h *Recipes) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	existing, err := h.Store.Get(id)
	if errors.Is(err, recipes.ErrNotFound) {
		http.Error(w, "No matching recipe found", http.StatusNotFound)
		return
	}

	h.submit(w, r, func(e *editor.Editor) { e.BeginEdit(existing) }, http.StatusOK)
}

func (h *Recipes) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	h.Store.Remove(id)

	w.WriteHeader(http.StatusNoContent)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
