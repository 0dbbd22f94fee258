package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"memegen/internal/backend"
	"memegen/internal/domain"
)

// Category tells the caller which kind of failure an Outcome carries.
type Category string

const (
	CategoryNone       Category = ""
	CategoryValidation Category = "validation"
	CategoryUpstream   Category = "upstream"
	CategoryTimeout    Category = "timeout"
	CategoryBadGateway Category = "bad_gateway"
	CategoryCanceled   Category = "canceled"
)

// StatusClientClosedRequest is the non-standard status used when the caller
// went away before the session ended.
const StatusClientClosedRequest = 499

// DefaultStatus is the HTTP status reported for a category when the backend
// status is not passed through.
func (c Category) DefaultStatus() int {
	switch c {
	case CategoryNone:
		return http.StatusOK
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryTimeout:
		return http.StatusRequestTimeout
	case CategoryBadGateway:
		return http.StatusBadGateway
	case CategoryCanceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// Outcome is the normalized result of one gateway call.
type Outcome struct {
	OK          bool
	ArtifactRef string
	Message     string
	Category    Category
	// Status overrides the category default when the backend's own HTTP
	// status is passed through.
	Status   int
	Attempts int
	Elapsed  time.Duration
}

// HTTPStatus returns the status a caller should answer with.
func (o Outcome) HTTPStatus() int {
	if o.OK {
		return http.StatusOK
	}
	if o.Status != 0 {
		return o.Status
	}
	return o.Category.DefaultStatus()
}

type verdict struct {
	state    State
	artifact string
	message  string
	status   int
	code     string
}

// classify maps one status reply onto the poll state machine.
func classify(reply *backend.Reply, msgs modeMessages) verdict {
	if !reply.IsJSON() {
		return verdict{state: StateGatewayError, message: invalidFormatMessage(reply)}
	}
	env, err := reply.Envelope()
	if err != nil {
		return verdict{state: StateGatewayError, message: MsgInvalidJSON}
	}
	if !reply.OK() {
		return verdict{
			state:   StateError,
			message: firstNonEmpty(env.Message(), msgs.fetchFailed),
			status:  reply.StatusCode,
		}
	}
	code, ok := env.Code()
	if !ok {
		return verdict{state: StatePolling, code: "none"}
	}
	codeText := strconv.FormatFloat(code, 'f', -1, 64)
	switch code {
	case 0:
		image := env.Image()
		if image == "" {
			return verdict{state: StateGatewayError, message: MsgMissingArtifact, code: codeText}
		}
		return verdict{state: StateDone, artifact: image, code: codeText}
	case 1:
		return verdict{state: StateError, message: firstNonEmpty(env.Message(), msgs.jobFailed), code: codeText}
	default:
		return verdict{state: StatePolling, code: codeText}
	}
}

// classifySubmit decides whether a submission was accepted. When it was not,
// the returned Outcome is final and polling must not start.
func classifySubmit(ctx context.Context, reply *backend.Reply, err error, msgs modeMessages) (Outcome, bool) {
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Category: CategoryCanceled, Message: MsgCanceled}, false
		}
		return Outcome{Category: CategoryUpstream, Message: backendAPIErrorPrefix + err.Error()}, false
	}
	if !reply.IsJSON() {
		return Outcome{Category: CategoryBadGateway, Message: invalidFormatMessage(reply)}, false
	}
	env, decodeErr := reply.Envelope()
	if decodeErr != nil {
		return Outcome{Category: CategoryBadGateway, Message: MsgInvalidJSON}, false
	}
	if !reply.OK() {
		return Outcome{
			Category: CategoryUpstream,
			Message:  firstNonEmpty(env.Message(), msgs.submitFailed),
			Status:   reply.StatusCode,
		}, false
	}
	return Outcome{}, true
}

// toOutcome maps a terminal poll result to the caller-facing shape.
func toOutcome(res Result) Outcome {
	out := Outcome{
		Message:  res.Message,
		Status:   res.HTTPStatus,
		Attempts: res.Attempts,
		Elapsed:  res.Elapsed,
	}
	switch res.State {
	case StateDone:
		out.OK = true
		out.ArtifactRef = res.Artifact
		out.Message = ""
		out.Status = 0
	case StateError:
		out.Category = CategoryUpstream
	case StateTimedOut:
		out.Category = CategoryTimeout
	case StateGatewayError:
		out.Category = CategoryBadGateway
	case StateCanceled:
		out.Category = CategoryCanceled
	default:
		out.Category = CategoryUpstream
		out.Message = fmt.Sprintf("poll session ended in non-terminal state %s", res.State)
	}
	return out
}

func validationOutcome(err error) Outcome {
	var verr *domain.ValidationError
	msg := err.Error()
	if errors.As(err, &verr) {
		msg = verr.Message
	}
	return Outcome{Category: CategoryValidation, Message: msg}
}

func invalidFormatMessage(reply *backend.Reply) string {
	return fmt.Sprintf("Backend returned invalid response format. Status: %d. Response: %s...",
		reply.StatusCode, reply.Snippet(backend.SnippetLength))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
