package handler

import (
	"net/http"

	"github.com/yamdb-dev/yamdb/shared/api"
	"github.com/yamdb-dev/yamdb/shared/domain"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleId, err := idParam(r, "title")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reviews, err := h.reviews.List(r.Context(), titleId, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

// CreateReview answers 409 when the caller already reviewed the title
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	titleId, err := idParam(r, "title")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateReviewRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	review, err := h.reviews.Create(r.Context(), mw.GetActorFromContext(r), titleId, body.Score, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	review, err := h.reviews.Get(r.Context(), titleId, reviewId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateReviewRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	review, err := h.reviews.Update(r.Context(), mw.GetActorFromContext(r), titleId, reviewId, domain.ReviewUpdate{Score: body.Score, Text: body.Text})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.reviews.Delete(r.Context(), mw.GetActorFromContext(r), titleId, reviewId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reviewPath(r *http.Request) (domain.TitleId, domain.ReviewId, error) {
	titleId, err := idParam(r, "title")
	if err != nil {
		return 0, 0, err
	}
	reviewId, err := idParam(r, "review")
	if err != nil {
		return 0, 0, err
	}
	return titleId, reviewId, nil
}
