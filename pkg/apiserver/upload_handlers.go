package apiserver

import (
	"io"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/sirupsen/logrus"
)

// Multipart memory ceiling; larger bodies spill to temp files before
// the uploader's own size check runs.
const maxUploadMemory = 32 << 20

func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		handleError(w, model.NewValidation("file", "invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, model.NewValidation("file", "a file must be provided"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handleError(w, err)
		return
	}

	admin := adminFromContext(r.Context())
	logrus.WithField("admin", admin.Username).Debugf("uploading %q (%d bytes)", header.Filename, len(data))

	resp, err := h.backend.Upload(data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, resp)
}
