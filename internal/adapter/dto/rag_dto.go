package dto

import "github.com/google/uuid"

// AskRequest is a retrieval question over the indexed corpus.
// ClientID and MeetingID optionally narrow retrieval to one client's
// meetings or a single meeting.
type AskRequest struct {
	Question  string     `json:"question" validate:"required,min=3"`
	TopK      int        `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
	MeetingID *uuid.UUID `json:"meeting_id,omitempty"`
}

// ReindexRequest controls whether existing chunks are replaced
type ReindexRequest struct {
	Force bool `json:"force,omitempty"`
}

// IndexMeetingResponse reports the outcome of indexing one meeting
type IndexMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	Chunks    int    `json:"chunks"`
	Skipped   bool   `json:"skipped"`
}
