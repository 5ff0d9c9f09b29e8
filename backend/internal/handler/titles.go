package handler

import (
	"net/http"

	"github.com/yamdb-dev/yamdb/shared/api"
	"github.com/yamdb-dev/yamdb/shared/domain"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

// ListTitles supports ?category=&genre=&name=&year= filters
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.TitleFilter{
		Category: q.Get("category"),
		Genre:    q.Get("genre"),
		Name:     q.Get("name"),
	}
	if year := q.Get("year"); year != "" {
		if filter.Year, err = parseIntParam(year, "year"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	titles, err := h.titles.List(r.Context(), filter, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, titles)
}

func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "title")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	title, err := h.titles.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, title)
}

func (h *Handler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var body api.CreateTitleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	title, err := h.titles.Create(r.Context(), mw.GetActorFromContext(r), domain.TitleCreationData{
		Name:        body.Name,
		Year:        body.Year,
		Description: body.Description,
		Category:    body.Category,
		Genres:      body.Genre,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, title)
}

func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "title")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateTitleRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	title, err := h.titles.Update(r.Context(), mw.GetActorFromContext(r), id, domain.TitleUpdate{
		Name:        body.Name,
		Year:        body.Year,
		Description: body.Description,
		Category:    body.Category,
		Genres:      body.Genre,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, title)
}

func (h *Handler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "title")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.titles.Delete(r.Context(), mw.GetActorFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
