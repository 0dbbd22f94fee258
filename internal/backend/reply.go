package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// SnippetLength bounds the body text quoted back when the backend breaks protocol.
const SnippetLength = 200

// Reply is the raw outcome of one backend call. Classification of status
// codes and payloads is left to the caller.
type Reply struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Reply) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the backend declared a JSON body.
func (r *Reply) IsJSON() bool {
	return r != nil && strings.Contains(strings.ToLower(r.ContentType), "application/json")
}

// Envelope decodes the backend's `{code, ret, error_msg}` body. Only a body
// that is not JSON at all is an error; valid JSON that is not an object
// yields an empty Envelope. Keys match exactly.
func (r *Reply) Envelope() (Envelope, error) {
	var env Envelope
	if r == nil {
		return env, fmt.Errorf("backend: decode envelope: empty reply")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &fields); err != nil {
		if json.Valid(r.Body) {
			return env, nil
		}
		return env, fmt.Errorf("backend: decode envelope: %w", err)
	}
	env.RawCode = fields["code"]
	env.Ret = fields["ret"]
	env.RawErrorMsg = fields["error_msg"]
	return env, nil
}

// Snippet returns at most n runes of the body for diagnostics.
func (r *Reply) Snippet(n int) string {
	if r == nil {
		return ""
	}
	return truncateRunes(string(r.Body), n)
}

// Envelope is the response shape shared by every backend endpoint. Fields
// are kept raw because the backend does not promise their types.
type Envelope struct {
	RawCode     json.RawMessage
	Ret         json.RawMessage
	RawErrorMsg json.RawMessage
}

// Code returns the numeric job status, if the body carried one.
func (e Envelope) Code() (float64, bool) {
	raw := bytes.TrimSpace(e.RawCode)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var code float64
	if err := json.Unmarshal(e.RawCode, &code); err != nil {
		return 0, false
	}
	return code, true
}

// Image extracts `ret.image` when ret is an object.
func (e Envelope) Image() string {
	var ret map[string]json.RawMessage
	if len(e.Ret) == 0 || json.Unmarshal(e.Ret, &ret) != nil {
		return ""
	}
	var image string
	if json.Unmarshal(ret["image"], &image) != nil {
		return ""
	}
	return strings.TrimSpace(image)
}

// Message returns the backend error text, trimmed. Non-string values yield "".
func (e Envelope) Message() string {
	var msg string
	if len(e.RawErrorMsg) == 0 || json.Unmarshal(e.RawErrorMsg, &msg) != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
