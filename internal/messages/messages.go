package messages

import "errors"

// Action tags a request with the operation it asks the record service to
// perform. A request without an action is malformed and never dispatched.
type Action string

const (
	ActionRecordToday Action = "recordToday"
	ActionGetMap      Action = "getMap"
	ActionGetAll      Action = "getAll"
	ActionClearAll    Action = "clearAll"
)

var (
	// ErrChannelUnavailable means the dispatcher is not running; the caller
	// skips the attempted action without queuing or retrying.
	ErrChannelUnavailable = errors.New("message channel unavailable")
	// ErrMalformedMessage means the request carried no recognizable action
	// and was ignored without a response.
	ErrMalformedMessage = errors.New("malformed message")
)

type Request struct {
	Action Action `json:"action"`
	TS     int64  `json:"ts,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Response is the closed set of reply variants, one per action.
type Response interface {
	isResponse()
}

type RecordResponse struct {
	OK      bool   `json:"ok"`
	Key     string `json:"key,omitempty"`
	Count   int    `json:"count,omitempty"`
	Gained  int    `json:"gained,omitempty"`
	TotalXP int    `json:"totalXP,omitempty"`
	Error   string `json:"error,omitempty"`
}

type MapResponse struct {
	Map     map[string]int `json:"map"`
	TotalXP int            `json:"totalXP"`
}

type ClearResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (RecordResponse) isResponse() {}
func (MapResponse) isResponse()    {}
func (ClearResponse) isResponse()  {}
