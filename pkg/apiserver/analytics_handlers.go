package apiserver

import (
	"encoding/json"
	"net/http"

	"github.com/basalt-io/basalt-cms/pkg/model"
)

// track is the public visit beacon. It always reports success and
// never waits on geolocation or storage: recording runs on its own
// goroutine and outlives this request.
func (h *handler) track(w http.ResponseWriter, r *http.Request) {
	var input model.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.PagePath == "" {
		// Malformed beacons are dropped quietly; the embedding page
		// must never see tracking fail.
		writeSuccess(w, map[string]string{"status": "success"})
		return
	}

	rawIP := realIP(r)
	userAgent := r.Header.Get("User-Agent")

	go h.backend.RecordVisit(input.PagePath, rawIP, userAgent)

	writeSuccess(w, map[string]string{"status": "success"})
}

func (h *handler) analyticsStats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.backend.AnalyticsStats())
}

func (h *handler) countryStats(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.backend.CountryStats())
}

func (h *handler) recentVisits(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.backend.RecentVisits())
}

func (h *handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backend.DashboardStats()
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, stats)
}

func (h *handler) recentActivity(w http.ResponseWriter, r *http.Request) {
	items, err := h.backend.RecentActivity()
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, map[string]interface{}{"activities": items})
}
