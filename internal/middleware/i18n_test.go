package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(r *http.Request)
		fallback    string
		lookup      CountryLookup
		want        string
		wantCountry string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "ZH")
				r.Header.Set("Accept-Language", "en-US")
			},
			want: "zh",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			fallback: "zh",
			want:     "en",
		},
		{
			name: "accept-language zh preference",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "zh-CN,en;q=0.8")
			},
			want: "zh",
		},
		{
			name: "unsupported x-locale falls through",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "de")
				r.Header.Set("Accept-Language", "zh")
			},
			want: "zh",
		},
		{
			name:        "country hint",
			lookup:      func(string) (string, error) { return "tw", nil },
			want:        "zh",
			wantCountry: "TW",
		},
		{
			name:        "non chinese country",
			lookup:      func(string) (string, error) { return "us", nil },
			fallback:    "zh",
			want:        "en",
			wantCountry: "US",
		},
		{
			name:     "configured fallback",
			lookup:   func(string) (string, error) { return "", assertError("no db") },
			fallback: "zh",
			want:     "zh",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			fallback := tc.fallback
			if fallback == "" {
				fallback = "en"
			}
			got, country := detectLocale(req, fallback, tc.lookup)
			if got != tc.want || country != tc.wantCountry {
				t.Fatalf("detectLocale() = %q/%q, want %q/%q", got, country, tc.want, tc.wantCountry)
			}
		})
	}
}

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver CountryLookup
		want     string
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "us")
				r.Header.Set("CF-IPCountry", "cn")
			},
			want: "US",
		},
		{
			name: "forwarded address is looked up",
			setup: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
			},
			resolver: func(ip string) (string, error) {
				if ip != "198.51.100.7" {
					return "", assertError("unexpected ip " + ip)
				}
				return "hk", nil
			},
			want: "HK",
		},
		{
			name: "resolver fallback",
			resolver: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					return "", assertError("unexpected ip " + ip)
				}
				return "sg", nil
			},
			want: "SG",
		},
		{
			name: "resolver error returns empty",
			resolver: func(ip string) (string, error) {
				return "", assertError("boom")
			},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveCountry(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NMiddlewareStoresLocale(t *testing.T) {
	var seen string
	h := I18N("zh", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LocaleFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "zh" {
		t.Fatalf("locale = %q, want zh", seen)
	}
	if rec.Header().Get("Content-Language") != "zh" {
		t.Fatalf("Content-Language = %q", rec.Header().Get("Content-Language"))
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != "en" {
		t.Fatalf("LocaleFromContext() default = %q, want %q", got, "en")
	}
	ctx = context.WithValue(ctx, LocaleKey, "zh")
	if got := LocaleFromContext(ctx); got != "zh" {
		t.Fatalf("LocaleFromContext() with value = %q, want %q", got, "zh")
	}
}
