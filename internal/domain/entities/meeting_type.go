package entities

// Meeting type tags. Each tag selects a summarization prompt pair.
const (
	MeetingTypeWorking     = "working_meeting"
	MeetingTypeDiagnostics = "diagnostics"
	MeetingTypeTraction    = "traction"
	MeetingTypeIntro       = "intro"
)

// MeetingTypes lists every recognized type tag
var MeetingTypes = []string{
	MeetingTypeWorking,
	MeetingTypeDiagnostics,
	MeetingTypeTraction,
	MeetingTypeIntro,
}

// IsValidMeetingType reports whether tag is a recognized meeting type
func IsValidMeetingType(tag string) bool {
	for _, t := range MeetingTypes {
		if t == tag {
			return true
		}
	}
	return false
}
