package dto

// StartResponse is returned by POST /v1/asr/start.
type StartResponse struct {
	SessionID string `json:"session_id" example:"sess_9f2c4e1ab0d84c7f"`
}

// PushRequest carries one audio chunk: mono little-endian float32 PCM,
// base64-encoded. The payload stays a string through binding; base64
// validity is checked only after the session itself is resolved.
// SampleRate defaults to the engine rate when 0.
type PushRequest struct {
	SessionID  string `json:"session_id" example:"sess_9f2c4e1ab0d84c7f"`
	Samples    string `json:"samples" format:"base64"`
	SampleRate int    `json:"sample_rate" example:"16000"`
}

type PushResponse struct {
	Text      string `json:"text" example:"hello wor"`
	LatencyMs int64  `json:"latency_ms" example:"42"`
}

type EndRequest struct {
	SessionID string `json:"session_id" example:"sess_9f2c4e1ab0d84c7f"`
}

type EndResponse struct {
	Text string `json:"text" example:"hello world"`
}

type MetricsResponse struct {
	Date         string `json:"date" example:"2026-08-25"`
	Hour         int    `json:"hour" example:"14"`
	Sessions     int64  `json:"sessions" example:"100"`
	Utterances   int64  `json:"utterances" example:"500"`
	AvgLatencyMs int64  `json:"avg_latency_ms" example:"150"`
	ErrorCount   int64  `json:"error_count" example:"5"`
}

type MetricsListResponse struct {
	Hours   int               `json:"hours" example:"24"`
	Metrics []MetricsResponse `json:"metrics"`
}
