package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/sirupsen/logrus"
)

func writeError(w http.ResponseWriter, httpStatus int, err error) {
	logrus.Errorf("got a response error: %v", err)
	o := model.ErrorResponse{
		Status:  httpStatus,
		Message: err.Error(),
	}
	res, _ := json.Marshal(o)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_, _ = w.Write(res)
}

// handleError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal error.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case model.IsNotFound(err):
		writeError(w, http.StatusNotFound, err)
	case model.IsConflict(err):
		writeError(w, http.StatusConflict, err)
	case model.IsValidation(err):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	res, err := json.Marshal(data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res)
}
