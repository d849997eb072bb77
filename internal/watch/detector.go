package watch

import (
	"sync"
	"time"

	"wsd/internal/messages"
	"wsd/internal/models"
	"wsd/internal/providers"
	"wsd/internal/structures"
)

type DetectorInterface interface {
	Observe(ev models.PlaybackEvent)
	ObserveBatch(events []models.PlaybackEvent)
	RecordNow(reason string)
	SessionCount() int
}

// Detector holds the arena of per-element watch sessions and turns playback
// events into at most one qualifying record per element. The daily guard
// bounds the whole arena to one ledger increment per day no matter how many
// elements cross their threshold.
type Detector struct {
	mu       sync.Mutex
	sessions map[string]*WatchSession
	guard    GuardInterface
	channel  messages.DispatcherInterface
	conf     *structures.Config
	logger   providers.Logger
}

func NewDetector(conf *structures.Config, guard GuardInterface, channel messages.DispatcherInterface, logger providers.Logger) *Detector {
	return &Detector{
		sessions: make(map[string]*WatchSession),
		guard:    guard,
		channel:  channel,
		conf:     conf,
		logger:   logger,
	}
}

func (d *Detector) ObserveBatch(events []models.PlaybackEvent) {
	for _, ev := range events {
		d.Observe(ev)
	}
}

func (d *Detector) Observe(ev models.PlaybackEvent) {
	if ev.Kind == models.EventEmbedEnded {
		// Cross-context ended notification; no element of our own to track.
		d.RecordNow("embed-ended")
		return
	}
	if ev.Element == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if ev.Kind == models.EventRemoved {
		delete(d.sessions, ev.Element)
		return
	}

	sess, ok := d.sessions[ev.Element]
	if !ok {
		sess = &WatchSession{}
		d.sessions[ev.Element] = sess
	}
	if ev.Duration > 0 {
		sess.Duration = ev.Duration
	}

	triggered := false
	reason := ""
	switch ev.Kind {
	case models.EventTimeUpdate, models.EventPause:
		// Pause runs the same progress check: a last chance before the
		// element sits idle.
		sess.Progress(ev.Position)
		triggered, reason = sess.ThresholdMet(d.conf.Watch.MinSeconds, d.conf.Watch.MinFraction)
	case models.EventSeeking, models.EventPlay:
		sess.Reposition(ev.Position)
	case models.EventEnded:
		triggered, reason = true, "ended event"
	}

	if triggered && sess.State != StateTriggered {
		sess.State = StateTriggered
		d.tryRecord(reason)
	}
}

// RecordNow runs the guarded record path outside any session, for manual
// triggers and externally-sourced ended notifications.
func (d *Detector) RecordNow(reason string) {
	d.tryRecord(reason)
}

func (d *Detector) SessionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sessions)
}

func (d *Detector) tryRecord(reason string) {
	if d.guard.HasRecordedToday() {
		d.logger.Debugf(providers.TypeApp, "Already recorded today - skipping (%s)", reason)
		return
	}

	d.logger.Infof(providers.TypeApp, "Recording today because: %s", reason)
	resp, err := d.channel.Send(messages.Request{
		Action: messages.ActionRecordToday,
		TS:     time.Now().UnixMilli(),
		Reason: reason,
	})
	if err != nil {
		// Channel failures are absorbed: skip, never queue or retry.
		d.logger.Warnf(providers.TypeApp, "Record channel not available: %s", err)
		return
	}

	if rec, ok := resp.(messages.RecordResponse); ok && rec.OK {
		if err := d.guard.MarkRecordedToday(); err != nil {
			d.logger.Errorf(providers.TypeApp, "Failed to mark today recorded: %s", err)
		}
	}
}
