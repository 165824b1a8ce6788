package types

import "encoding/json"

// StatusProcessed marks a queue message that the relay has transformed.
const StatusProcessed = "processed"

// MsgRelaySuccess is reported to the Lambda runtime after a publish succeeds.
const MsgRelaySuccess = "Message processed successfully"

// ProcessedMessage is the notification payload the relay publishes for each
// consumed queue message. OriginalMessage carries the queue body verbatim.
type ProcessedMessage struct {
	OriginalMessage json.RawMessage `json:"originalMessage"`
	Timestamp       string          `json:"timestamp"`
	Status          string          `json:"status"`
}

// RelayResponse is returned to the Lambda runtime on success. Body holds the
// JSON text of a RelayResult.
type RelayResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// RelayResult is the decoded form of RelayResponse.Body.
type RelayResult struct {
	Message string `json:"message"`
}
