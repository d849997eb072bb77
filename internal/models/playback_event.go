package models

// EventKind mirrors the media events observed on a tracked player element.
type EventKind string

const (
	EventTimeUpdate EventKind = "timeupdate"
	EventSeeking    EventKind = "seeking"
	EventPlay       EventKind = "play"
	EventPause      EventKind = "pause"
	EventEnded      EventKind = "ended"
	EventRemoved    EventKind = "removed"
	// EventEmbedEnded is an externally-sourced ended notification from an
	// embedded player in another browsing context. It carries no element.
	EventEmbedEnded EventKind = "embed-ended"
)

type PlaybackEvent struct {
	Element  string    `json:"el"`
	Kind     EventKind `json:"ev"`
	Position float64   `json:"t"`
	Duration float64   `json:"d"`
}

type InputEvents struct {
	Events []PlaybackEvent `json:"events"`
}
