package entities

import "errors"

// Domain sentinel errors
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrMappingNotFound    = errors.New("project mapping not found")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrDuplicateMeeting   = errors.New("meeting already exists for this transcript")
	ErrUnknownMeetingType = errors.New("unknown meeting type")
	ErrEmptyTranscript    = errors.New("meeting has no transcript")
	ErrDimensionMismatch  = errors.New("embedding dimension mismatch")
	ErrAlreadyIndexed     = errors.New("meeting already indexed")
	ErrNotIndexed         = errors.New("meeting not indexed")
	ErrSummaryInFlight    = errors.New("summarization already in progress")
)
