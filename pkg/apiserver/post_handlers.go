package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/gorilla/mux"
)

func (h *handler) listPublicPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		handleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		handleError(w, err)
		return
	}
	categoryID, err := queryInt(r, "category_id", 0)
	if err != nil {
		handleError(w, err)
		return
	}

	opts := model.PostListOptions{
		Page:       page,
		Limit:      limit,
		CategoryID: uint(categoryID),
		Category:   r.URL.Query().Get("category"),
		Search:     r.URL.Query().Get("search"),
	}
	if err := opts.Validate(); err != nil {
		handleError(w, err)
		return
	}

	result, err := h.backend.PublicPosts(opts)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, result)
}

func (h *handler) getPublicPost(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := h.backend.PublicPostBySlug(slug)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, post)
}

func (h *handler) listAdminPosts(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		handleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		handleError(w, err)
		return
	}
	if page < 1 || limit < 1 {
		handleError(w, model.NewValidation("page", "page must be >= 1 and limit > 0"))
		return
	}

	result, err := h.backend.AdminPosts(page, limit)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, result)
}

func (h *handler) getAdminPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	post, err := h.backend.GetPost(id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, post)
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var input model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}
	if err := input.Validate(); err != nil {
		handleError(w, err)
		return
	}

	post, err := h.backend.CreatePost(input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, post)
}

func (h *handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var input model.PostUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}

	post, err := h.backend.UpdatePost(id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, post)
}

func (h *handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.backend.DeletePost(id); err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, map[string]string{"message": "post deleted"})
}
