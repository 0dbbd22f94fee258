package generation

import "memegen/internal/domain"

// Fixed user-facing messages. Backend supplied error text always takes
// precedence over these.
const (
	MsgUploadFailed           = "Failed to upload template image"
	MsgFetchFailed            = "Failed to get generated result"
	MsgGenerationFailed       = "Generation failed"
	MsgGenerationTimedOut     = "Generation timed out. Please try again."
	MsgRegenerationFailed     = "Regeneration failed"
	MsgFetchRegeneratedFailed = "Failed to get regenerated result"
	MsgRegenerationTimedOut   = "Regeneration timed out. Please try again."
	MsgInvalidJSON            = "Backend returned invalid JSON response. Please check backend service."
	MsgMissingArtifact        = "Backend reported completion without an image"
	MsgCanceled               = "Request canceled before the result was ready"

	backendAPIErrorPrefix = "Backend API error: "
)

type modeMessages struct {
	submitFailed string
	fetchFailed  string
	jobFailed    string
	timedOut     string
}

func messagesFor(mode domain.Mode) modeMessages {
	if mode == domain.ModeRegenerate {
		return modeMessages{
			submitFailed: MsgRegenerationFailed,
			fetchFailed:  MsgFetchRegeneratedFailed,
			jobFailed:    MsgRegenerationFailed,
			timedOut:     MsgRegenerationTimedOut,
		}
	}
	return modeMessages{
		submitFailed: MsgUploadFailed,
		fetchFailed:  MsgFetchFailed,
		jobFailed:    MsgGenerationFailed,
		timedOut:     MsgGenerationTimedOut,
	}
}

// FixedMessages lists every message the package can produce on its own.
func FixedMessages() []string {
	return []string{
		MsgUploadFailed,
		MsgFetchFailed,
		MsgGenerationFailed,
		MsgGenerationTimedOut,
		MsgRegenerationFailed,
		MsgFetchRegeneratedFailed,
		MsgRegenerationTimedOut,
		MsgInvalidJSON,
		MsgMissingArtifact,
		MsgCanceled,
	}
}
