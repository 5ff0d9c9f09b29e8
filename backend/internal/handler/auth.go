package handler

import (
	"net/http"

	"github.com/yamdb-dev/yamdb/shared/api"
	"github.com/yamdb-dev/yamdb/shared/utils"
)

// Signup registers the username/email pair (or finds it) and mails a
// confirmation code. Calling it again resends the code.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Signup(r.Context(), body.Username, body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.SignupResponse{Email: user.Email, Username: user.Username})
}

func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var body api.TokenRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Token(r.Context(), body.Username, body.ConfirmationCode)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.TokenResponse{Token: token})
}
