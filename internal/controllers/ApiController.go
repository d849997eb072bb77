package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"wsd/internal/heatmap"
	"wsd/internal/messages"
	"wsd/internal/models"
	"wsd/internal/providers"
	"wsd/internal/services"
	"wsd/internal/structures"
	"wsd/internal/watch"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger   providers.Logger
	channel  messages.DispatcherInterface
	detector watch.DetectorInterface
	service  services.RecordServiceInterface
	cache    providers.CacheProviderInterface
	conf     *structures.Config
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// ReceiveEvents ingests a batch of playback events from a tracked page.
func (ac *ApiController) ReceiveEvents(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.InputEvents
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.detector.ObserveBatch(payload.Events)
	w.WriteHeader(http.StatusAccepted)
}

// RecordToday forwards a manual record request over the message channel.
func (ac *ApiController) RecordToday(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var req messages.Request
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.Action = messages.ActionRecordToday
	if req.TS == 0 {
		req.TS = time.Now().UnixMilli()
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}

	resp, err := ac.channel.Send(req)
	if err != nil {
		ac.writeChannelError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (ac *ApiController) GetMap(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "map", func() (any, error) {
		return ac.channel.Send(messages.Request{Action: messages.ActionGetMap})
	})
}

func (ac *ApiController) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "heatmap", func() (any, error) {
		resp, err := ac.channel.Send(messages.Request{Action: messages.ActionGetAll})
		if err != nil {
			return nil, err
		}
		mapResp, ok := resp.(messages.MapResponse)
		if !ok {
			return nil, messages.ErrMalformedMessage
		}
		return heatmap.Build(mapResp.Map, time.Now(), ac.conf.Watch.HistoryDays), nil
	})
}

func (ac *ApiController) ClearAll(w http.ResponseWriter, r *http.Request) {
	resp, err := ac.channel.Send(messages.Request{Action: messages.ActionClearAll})
	if err != nil {
		ac.writeChannelError(w, err)
		return
	}
	writeJSON(w, resp)
}

// Export streams the ledger in the compact binary snapshot format.
func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=ledger.snap")
	if err := ac.service.WriteSnapshotTo(w); err != nil {
		ac.logger.Errorf(providers.TypeApp, "Export failed: %s", err)
	}
}

func (ac *ApiController) writeChannelError(w http.ResponseWriter, err error) {
	if errors.Is(err, messages.ErrMalformedMessage) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ac.logger.Errorf(providers.TypeApp, "Message channel error: %s", err)
	http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
}

func writeJSON(w http.ResponseWriter, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func NewApiController(logger providers.Logger, channel messages.DispatcherInterface, detector watch.DetectorInterface, service services.RecordServiceInterface, cache providers.CacheProviderInterface, conf *structures.Config) *ApiController {
	return &ApiController{
		logger:   logger,
		channel:  channel,
		detector: detector,
		service:  service,
		cache:    cache,
		conf:     conf,
	}
}
