package messages

import (
	"sync"

	"wsd/internal/providers"
	"wsd/internal/services"
)

type DispatcherInterface interface {
	Start()
	Stop()
	Send(req Request) (Response, error)
}

// Dispatcher is the serialized front door to the record service: one
// goroutine answers requests in arrival order, so no two operations ever
// interleave their read-modify-write sections through this channel.
type Dispatcher struct {
	service  services.RecordServiceInterface
	logger   providers.Logger
	requests chan envelope
	quit     chan struct{}
	mu       sync.Mutex
	running  bool
}

type envelope struct {
	req   Request
	reply chan Response
}

func NewDispatcher(service services.RecordServiceInterface, logger providers.Logger) DispatcherInterface {
	return &Dispatcher{
		service:  service,
		logger:   logger,
		requests: make(chan envelope),
	}
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.quit = make(chan struct{})
	go d.loop(d.quit)
}

func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.running = false
	close(d.quit)
}

// Send dispatches a request and waits for its reply. A request with no
// action fails immediately with ErrMalformedMessage and is never enqueued;
// sending while the dispatcher is stopped fails with ErrChannelUnavailable.
func (d *Dispatcher) Send(req Request) (Response, error) {
	if req.Action == "" {
		return nil, ErrMalformedMessage
	}

	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil, ErrChannelUnavailable
	}
	quit := d.quit
	d.mu.Unlock()

	env := envelope{req: req, reply: make(chan Response, 1)}
	select {
	case d.requests <- env:
	case <-quit:
		return nil, ErrChannelUnavailable
	}

	select {
	case resp := <-env.reply:
		if resp == nil {
			return nil, ErrMalformedMessage
		}
		return resp, nil
	case <-quit:
		return nil, ErrChannelUnavailable
	}
}

func (d *Dispatcher) loop(quit chan struct{}) {
	for {
		select {
		case env := <-d.requests:
			env.reply <- d.handle(env.req)
		case <-quit:
			return
		}
	}
}

func (d *Dispatcher) handle(req Request) Response {
	switch req.Action {
	case ActionRecordToday:
		result, err := d.service.RecordToday()
		if err != nil {
			d.logger.Errorf(providers.TypeApp, "Error recording date: %s", err)
			return RecordResponse{OK: false, Error: err.Error()}
		}
		d.logger.Infof(providers.TypeApp, "Recorded %s, count now %d, totalXP %d", result.Key, result.Count, result.TotalXP)
		return RecordResponse{
			OK:      true,
			Key:     result.Key,
			Count:   result.Count,
			Gained:  result.Gained,
			TotalXP: result.TotalXP,
		}

	case ActionGetMap, ActionGetAll:
		data, totalXP := d.service.GetAll()
		return MapResponse{Map: data, TotalXP: totalXP}

	case ActionClearAll:
		if err := d.service.ClearAll(); err != nil {
			d.logger.Errorf(providers.TypeApp, "Error clearing ledger: %s", err)
			return ClearResponse{OK: false, Error: err.Error()}
		}
		return ClearResponse{OK: true}

	default:
		// Unknown actions get no response, matching the wire contract.
		d.logger.Debugf(providers.TypeApp, "Ignoring message with unknown action %q", req.Action)
		return nil
	}
}
