package summarize

import (
	"strings"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// PromptTemplate holds the prompt pair for one meeting type. The user prompt
// contains a {transcript} placeholder filled at call time.
type PromptTemplate struct {
	System    string
	User      string
	CharLimit int // transcript budget before clipping, 0 means no limit
}

const jsonInstructions = `Respond with a single JSON object and nothing else. Use these keys:
"summary" (string), "key_points" (array of strings), "decisions" (array of strings),
"action_items" (array of strings), "open_questions" (array of strings).`

// catalog maps every recognized type tag to its prompt pair
var catalog = map[string]PromptTemplate{
	entities.MeetingTypeWorking: {
		System: "You are an operations analyst summarizing a working meeting between an agency team and a client. Focus on progress, blockers and commitments. " + jsonInstructions,
		User: `Summarize this working meeting transcript. Capture what was done, what is blocked, and every concrete commitment with its owner.

Transcript:
{transcript}`,
		CharLimit: 150000,
	},
	entities.MeetingTypeDiagnostics: {
		System: "You are a marketing consultant reviewing a diagnostics session with a prospective client. Surface their current setup, pain points and growth levers. " + jsonInstructions,
		User: `Summarize this diagnostics call transcript. Describe the client's current situation, the problems uncovered, and the opportunities discussed.

Transcript:
{transcript}`,
		CharLimit: 150000,
	},
	entities.MeetingTypeTraction: {
		System: "You are a performance analyst summarizing a traction review. Concentrate on metrics, experiments and next bets. " + jsonInstructions,
		User: `Summarize this traction review transcript. Report the numbers that were discussed, what worked, what did not, and the agreed next experiments.

Transcript:
{transcript}`,
		CharLimit: 150000,
	},
	entities.MeetingTypeIntro: {
		System: "You are a sales assistant summarizing an introductory call with a potential client. Capture who they are, what they need and the agreed follow-up. " + jsonInstructions,
		User: `Summarize this intro call transcript. Note the prospect's business, their needs, budget signals, and the next step both sides agreed on.

Transcript:
{transcript}`,
		CharLimit: 100000,
	},
}

// TemplateFor returns the prompt pair for a type tag
func TemplateFor(typeTag string) (PromptTemplate, bool) {
	t, ok := catalog[typeTag]
	return t, ok
}

// Render fills the transcript into the user prompt, clipping to the
// template's budget. Returns the rendered prompt and whether clipping
// happened.
func (t PromptTemplate) Render(transcript string) (string, bool) {
	clipped := false
	if t.CharLimit > 0 && len(transcript) > t.CharLimit {
		transcript = transcript[:t.CharLimit]
		clipped = true
	}
	return strings.ReplaceAll(t.User, "{transcript}", transcript), clipped
}
