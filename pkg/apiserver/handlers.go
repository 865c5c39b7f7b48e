package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/basalt-io/basalt-cms/pkg/auth"
	"github.com/basalt-io/basalt-cms/pkg/backend"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/basalt-io/basalt-cms/pkg/version"
	"github.com/gorilla/mux"
)

type handler struct {
	backend backend.Backend
	auth    *auth.Service
}

func newHandler(b backend.Backend, a *auth.Service) *handler {
	return &handler{
		backend: b,
		auth:    a,
	}
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	v := version.Get()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(500)
		_, _ = w.Write([]byte(`{"success": false}`))
	}
}

// pathID pulls the numeric {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, model.NewValidation("id", "invalid id %q", raw)
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, falling back to def when
// absent. A malformed value surfaces as a validation error.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.NewValidation(name, "%s must be an integer", name)
	}
	return n, nil
}
