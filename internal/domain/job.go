package domain

import "strings"

// Mode enumerates the generation flows a session can start.
type Mode string

const (
	ModeInitial    Mode = "initial"
	ModeRegenerate Mode = "regenerate"
)

// Directive is the modification applied when regenerating an image.
type Directive string

const (
	DirectiveStyle  Directive = "style"
	DirectiveAdd    Directive = "add"
	DirectiveRemove Directive = "remove"
)

// Valid reports whether d is a known directive.
func (d Directive) Valid() bool {
	switch d {
	case DirectiveStyle, DirectiveAdd, DirectiveRemove:
		return true
	default:
		return false
	}
}

// NeedsElement reports whether the directive operates on a named element.
func (d Directive) NeedsElement() bool {
	return d == DirectiveAdd || d == DirectiveRemove
}

// JobRequest identifies one unit of work submitted to the generation backend.
type JobRequest struct {
	SessionID string
	Mode      Mode

	// ImageRef is the chosen template for ModeInitial.
	ImageRef string

	// Directive and Element describe the change for ModeRegenerate.
	Directive Directive
	Element   string
}

// Normalize trims user supplied fields in place.
func (r *JobRequest) Normalize() {
	r.SessionID = strings.TrimSpace(r.SessionID)
	r.ImageRef = strings.TrimSpace(r.ImageRef)
	r.Directive = Directive(strings.ToLower(strings.TrimSpace(string(r.Directive))))
	r.Element = strings.TrimSpace(r.Element)
}

// Validate checks the request before anything is sent to the backend.
func (r JobRequest) Validate() error {
	if strings.TrimSpace(r.SessionID) == "" {
		return ErrSessionRequired
	}
	switch r.Mode {
	case ModeInitial:
		if strings.TrimSpace(r.ImageRef) == "" {
			return ErrImageRequired
		}
	case ModeRegenerate:
		if r.Directive == "" {
			return ErrDirectiveRequired
		}
		if !r.Directive.Valid() {
			return ErrDirectiveInvalid
		}
		if r.Directive.NeedsElement() && strings.TrimSpace(r.Element) == "" {
			return ErrElementRequired
		}
	default:
		return ErrModeInvalid
	}
	return nil
}
