package i18n

import (
	"testing"

	"memegen/internal/domain"
	"memegen/internal/generation"
)

func TestEveryFixedMessageHasTranslation(t *testing.T) {
	msgs := generation.FixedMessages()
	for _, err := range []*domain.ValidationError{
		domain.ErrSessionRequired,
		domain.ErrImageRequired,
		domain.ErrDirectiveRequired,
		domain.ErrDirectiveInvalid,
		domain.ErrElementRequired,
		domain.ErrModeInvalid,
	} {
		msgs = append(msgs, err.Message)
	}
	for _, msg := range msgs {
		if !Has(msg) {
			t.Errorf("no translation registered for %q", msg)
			continue
		}
		if got := Localize(Chinese, msg); got == msg {
			t.Errorf("Localize(zh, %q) returned the English text", msg)
		}
		if got := Localize(English, msg); got != msg {
			t.Errorf("Localize(en, %q) = %q", msg, got)
		}
	}
}

func TestLocalizeLeavesUnknownTextAlone(t *testing.T) {
	for _, msg := range []string{"no faces found", "100% broken", "Backend API error: dial tcp"} {
		if got := Localize(Chinese, msg); got != msg {
			t.Fatalf("Localize(zh, %q) = %q", msg, got)
		}
	}
}

func TestLocalize(t *testing.T) {
	if got := Localize(Chinese, "Generation failed"); got != "生成失败" {
		t.Fatalf("got %q", got)
	}
	if got := Localize("fr", "Generation failed"); got != "Generation failed" {
		t.Fatalf("unsupported locale should fall back to English, got %q", got)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"zh-CN,zh;q=0.9,en;q=0.8", Chinese},
		{"zh-Hans-CN", Chinese},
		{"en-US,en;q=0.9", English},
		{"fr-FR,zh;q=0.5", Chinese},
		{"de-DE", ""},
	}
	for _, tc := range tests {
		if got := MatchAcceptLanguage(tc.header); got != tc.want {
			t.Errorf("MatchAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"zh":      Chinese,
		"ZH-hans": Chinese,
		"en-GB":   English,
		"":        "",
		"??":      "",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestForCountry(t *testing.T) {
	tests := map[string]string{
		"cn": Chinese,
		"SG": Chinese,
		"HK": Chinese,
		"US": English,
		"":   "",
	}
	for in, want := range tests {
		if got := ForCountry(in); got != want {
			t.Errorf("ForCountry(%q) = %q, want %q", in, got, want)
		}
	}
}
