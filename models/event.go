package models

// Event is a single analytics event.
type Event struct {
	// Name is the event name, e.g. "app_start" or "page_view".
	Name string `json:"name"`

	// Params carries event parameters. Values must be JSON-serializable.
	Params map[string]any `json:"params,omitempty"`
}
