package dto

// FirefliesWebhookRequest is the delivery payload from the transcript
// provider. Only transcription completion events start the pipeline.
type FirefliesWebhookRequest struct {
	MeetingID string `json:"meetingId" validate:"required"`
	EventType string `json:"eventType" validate:"required"`
	ClientRef string `json:"clientReferenceId,omitempty"`
}

// WebhookResponse acknowledges a webhook delivery
type WebhookResponse struct {
	MeetingID string `json:"meeting_id,omitempty"`
	Status    string `json:"status"` // accepted, duplicate, ignored
}
