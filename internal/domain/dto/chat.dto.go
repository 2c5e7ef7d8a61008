package dto

// ChatRequest is the POST body of /api/chat. GET requests carry the same
// fields as query parameters.
type ChatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Init    bool   `json:"init"`
	Welcome bool   `json:"welcome"`
	Persona string `json:"persona"`
}

type ChatResponse struct {
	Reply  string         `json:"reply"`
	Text   string         `json:"text"`
	Meta   map[string]any `json:"meta"`
	TookMs int64          `json:"took_ms"`
}

type IgnoredResponse struct {
	Ignored bool   `json:"ignored"`
	Reason  string `json:"reason"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// ChatResult is what the dispatch pipeline hands back to the HTTP layer.
type ChatResult struct {
	Text    string
	Meta    map[string]any
	Ignored bool
}
