package domain

import (
	"errors"
	"testing"
)

func TestJobRequestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  JobRequest
		want error
	}{
		{
			name: "missing session",
			req:  JobRequest{Mode: ModeInitial, ImageRef: "/template1.jpg"},
			want: ErrSessionRequired,
		},
		{
			name: "blank session",
			req:  JobRequest{SessionID: "   ", Mode: ModeInitial, ImageRef: "/template1.jpg"},
			want: ErrSessionRequired,
		},
		{
			name: "initial without template",
			req:  JobRequest{SessionID: "u1", Mode: ModeInitial},
			want: ErrImageRequired,
		},
		{
			name: "initial ok",
			req:  JobRequest{SessionID: "u1", Mode: ModeInitial, ImageRef: "/template1.jpg"},
		},
		{
			name: "regenerate without directive",
			req:  JobRequest{SessionID: "u1", Mode: ModeRegenerate},
			want: ErrDirectiveRequired,
		},
		{
			name: "regenerate unknown directive",
			req:  JobRequest{SessionID: "u1", Mode: ModeRegenerate, Directive: "rotate"},
			want: ErrDirectiveInvalid,
		},
		{
			name: "style needs no element",
			req:  JobRequest{SessionID: "u1", Mode: ModeRegenerate, Directive: DirectiveStyle},
		},
		{
			name: "add needs element",
			req:  JobRequest{SessionID: "u1", Mode: ModeRegenerate, Directive: DirectiveAdd},
			want: ErrElementRequired,
		},
		{
			name: "remove with element",
			req:  JobRequest{SessionID: "u1", Mode: ModeRegenerate, Directive: DirectiveRemove, Element: "hat"},
		},
		{
			name: "unknown mode",
			req:  JobRequest{SessionID: "u1", Mode: "remix"},
			want: ErrModeInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() = %v, want it to match ErrValidation", err)
			}
		})
	}
}

func TestJobRequestNormalize(t *testing.T) {
	req := JobRequest{SessionID: " u1 ", Directive: " ADD ", Element: " hat "}
	req.Normalize()
	if req.SessionID != "u1" || req.Directive != DirectiveAdd || req.Element != "hat" {
		t.Fatalf("normalized request = %#v", req)
	}
}
