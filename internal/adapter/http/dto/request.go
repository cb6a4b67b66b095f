package dto

// IngestRequest carries one free-text message for a session.
type IngestRequest struct {
	Text string `json:"text"`
}
