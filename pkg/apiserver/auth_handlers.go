package apiserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/auth"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var input model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}

	tokens, err := h.auth.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, errors.New("incorrect username or password"))
			return
		}
		handleError(w, err)
		return
	}
	writeSuccess(w, tokens)
}

func (h *handler) refresh(w http.ResponseWriter, r *http.Request) {
	var input model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}

	tokens, err := h.auth.Refresh(input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, errors.New("could not validate credentials"))
			return
		}
		handleError(w, err)
		return
	}
	// Refresh responses carry no admin payload.
	tokens.Admin = nil
	writeSuccess(w, tokens)
}
