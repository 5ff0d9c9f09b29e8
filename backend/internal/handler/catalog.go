package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb-dev/yamdb/shared/api"
	"github.com/yamdb-dev/yamdb/shared/domain"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	categories, err := h.catalog.Categories(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	category, err := h.catalog.CreateCategory(r.Context(), mw.GetActorFromContext(r), domain.Category{Name: body.Name, Slug: body.Slug})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCategory(r.Context(), mw.GetActorFromContext(r), chi.URLParam(r, "slug")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	genres, err := h.catalog.Genres(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, genres)
}

func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCategoryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	genre, err := h.catalog.CreateGenre(r.Context(), mw.GetActorFromContext(r), domain.Genre{Name: body.Name, Slug: body.Slug})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, genre)
}

func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteGenre(r.Context(), mw.GetActorFromContext(r), chi.URLParam(r, "slug")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
