package models

// BuildEvent reports progress of a long-running index construction on
// the event stream. The scoring core itself never emits events; the
// application layer wraps construction and publishes these.
type BuildEvent struct {
	Stage     string `json:"stage"`
	Text      string `json:"text"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	ElapsedMS int64  `json:"elapsed_ms"`
}
