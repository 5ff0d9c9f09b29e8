package handler

import (
	"net/http"

	"github.com/yamdb-dev/yamdb/shared/api"
	mw "github.com/yamdb-dev/yamdb/shared/middleware"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	page, err := pageParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comments, err := h.comments.List(r.Context(), titleId, reviewId, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comments)
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), mw.GetActorFromContext(r), titleId, reviewId, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, comment)
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	commentId, err := idParam(r, "comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Get(r.Context(), titleId, reviewId, commentId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comment)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	commentId, err := idParam(r, "comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comments.Update(r.Context(), mw.GetActorFromContext(r), titleId, reviewId, commentId, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, comment)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleId, reviewId, err := reviewPath(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	commentId, err := idParam(r, "comment")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.comments.Delete(r.Context(), mw.GetActorFromContext(r), titleId, reviewId, commentId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
