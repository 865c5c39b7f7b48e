package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/model"
)

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.backend.ListCategories()
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, categories)
}

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var input model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}
	if err := input.Validate(); err != nil {
		handleError(w, err)
		return
	}

	category, err := h.backend.CreateCategory(input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, category)
}

func (h *handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var input model.CategoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}

	category, err := h.backend.UpdateCategory(id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, category)
}

func (h *handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.backend.DeleteCategory(id); err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, map[string]string{"message": "category deleted"})
}
