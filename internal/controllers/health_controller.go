package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"wsd/internal/services"
	"wsd/internal/watch"
)

type HealthController struct {
	service   services.RecordServiceInterface
	detector  watch.DetectorInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	ActiveDays    int     `json:"active_days"`
	CurrentStreak int     `json:"current_streak"`
	WatchSessions int     `json:"watch_sessions"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		ActiveDays:    hc.service.ActiveDays(),
		CurrentStreak: hc.service.CurrentStreak(),
		WatchSessions: hc.detector.SessionCount(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.RecordServiceInterface, detector watch.DetectorInterface) *HealthController {
	return &HealthController{
		service:   service,
		detector:  detector,
		startTime: time.Now(),
	}
}
