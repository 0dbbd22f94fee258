package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{BaseURL: "  "}); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("NewClient error = %v, want ErrMissingBaseURL", err)
	}
	client, err := NewClient(Options{BaseURL: "http://backend:9000///"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.BaseURL() != "http://backend:9000" {
		t.Fatalf("base url = %q", client.BaseURL())
	}
}

func TestClientPayloads(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	client, err := NewClient(Options{
		BaseURL:    "http://backend:9000",
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	for _, path := range []string{pathPostBaseImage, pathRegenerate, pathGetResult, pathRegister, pathProcessKeywords, pathProcessTags, pathGetBaseImages} {
		transport.setJSONResponse(path, map[string]any{"code": 0, "ret": "", "error_msg": ""})
	}

	ctx := context.Background()
	tests := []struct {
		name string
		call func() (*Reply, error)
		path string
		want map[string]any
	}{
		{
			name: "base image",
			call: func() (*Reply, error) { return client.SubmitBaseImage(ctx, "u1", "/template1.jpg") },
			path: pathPostBaseImage,
			want: map[string]any{"user_id": "u1", "image_url": "/template1.jpg"},
		},
		{
			name: "regenerate defaults element",
			call: func() (*Reply, error) { return client.SubmitRegenerate(ctx, "u1", "style", "") },
			path: pathRegenerate,
			want: map[string]any{"user_id": "u1", "detail_modify": "style", "element": ""},
		},
		{
			name: "get result",
			call: func() (*Reply, error) { return client.FetchResult(ctx, "u1") },
			path: pathGetResult,
			want: map[string]any{"user_id": "u1"},
		},
		{
			name: "register",
			call: func() (*Reply, error) { return client.Register(ctx, "u2") },
			path: pathRegister,
			want: map[string]any{"user_id": "u2"},
		},
		{
			name: "base images",
			call: func() (*Reply, error) { return client.BaseImages(ctx, "u3") },
			path: pathGetBaseImages,
			want: map[string]any{"user_id": "u3"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply, err := tc.call()
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if !reply.OK() || !reply.IsJSON() {
				t.Fatalf("reply = %+v, want ok json", reply)
			}
			if transport.lastPath != tc.path {
				t.Fatalf("path = %q, want %q", transport.lastPath, tc.path)
			}
			if transport.lastContentType != "application/json" {
				t.Fatalf("content type = %q", transport.lastContentType)
			}
			var payload map[string]any
			if err := json.Unmarshal(transport.lastBody, &payload); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if len(payload) != len(tc.want) {
				t.Fatalf("payload = %v, want %v", payload, tc.want)
			}
			for k, v := range tc.want {
				if payload[k] != v {
					t.Fatalf("payload[%s] = %v, want %v", k, payload[k], v)
				}
			}
		})
	}
}

func TestClientKeywordAndTagPayloads(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	client, _ := NewClient(Options{BaseURL: "http://backend:9000", HTTPClient: &http.Client{Transport: transport}})
	transport.setJSONResponse(pathProcessKeywords, map[string]any{"code": 0})
	transport.setJSONResponse(pathProcessTags, map[string]any{"code": 0})

	if _, err := client.ProcessKeywords(context.Background(), "u1", []string{"cat", "monday"}); err != nil {
		t.Fatalf("keywords: %v", err)
	}
	var kw struct {
		UserID   string   `json:"user_id"`
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(transport.lastBody, &kw); err != nil {
		t.Fatalf("decode keywords: %v", err)
	}
	if kw.UserID != "u1" || len(kw.Keywords) != 2 || kw.Keywords[1] != "monday" {
		t.Fatalf("keywords payload = %+v", kw)
	}

	if _, err := client.ProcessTags(context.Background(), "u1", map[string]any{"mood": "sleepy"}); err != nil {
		t.Fatalf("tags: %v", err)
	}
	var tags struct {
		Tags map[string]any `json:"tags"`
	}
	if err := json.Unmarshal(transport.lastBody, &tags); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	if tags.Tags["mood"] != "sleepy" {
		t.Fatalf("tags payload = %+v", tags)
	}
}

func TestClientKeepsErrorStatuses(t *testing.T) {
	transport := &captureTransport{responses: map[string]responseStub{}}
	client, _ := NewClient(Options{BaseURL: "http://backend:9000", HTTPClient: &http.Client{Transport: transport}})
	transport.responses[pathGetResult] = responseStub{
		status: http.StatusServiceUnavailable,
		header: http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		body:   []byte("<html>maintenance</html>"),
	}

	reply, err := client.FetchResult(context.Background(), "u1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if reply.OK() || reply.IsJSON() {
		t.Fatalf("reply = %+v, want non-ok non-json", reply)
	}
	if reply.Snippet(6) != "<html>" {
		t.Fatalf("snippet = %q", reply.Snippet(6))
	}
}

func TestClientTransportError(t *testing.T) {
	client, _ := NewClient(Options{
		BaseURL:    "http://backend:9000",
		HTTPClient: &http.Client{Transport: failingTransport{err: errors.New("connection refused")}},
	})
	_, err := client.Register(context.Background(), "u1")
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("err = %v, want transport failure", err)
	}
	if !strings.HasPrefix(err.Error(), "backend: register:") {
		t.Fatalf("err = %q, want backend: register: prefix", err)
	}
}

func TestEnvelopeCodeAndImage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  float64
		wantHas   bool
		wantImage string
	}{
		{name: "done", body: `{"code":0,"ret":{"image":"/out.jpg"}}`, wantCode: 0, wantHas: true, wantImage: "/out.jpg"},
		{name: "pending", body: `{"code":2,"ret":""}`, wantCode: 2, wantHas: true},
		{name: "negative", body: `{"code":-7}`, wantCode: -7, wantHas: true},
		{name: "missing code", body: `{"ret":{"image":"/x.jpg"}}`, wantHas: false, wantImage: "/x.jpg"},
		{name: "string code", body: `{"code":"0"}`, wantHas: false},
		{name: "null code", body: `{"code":null}`, wantHas: false},
		{name: "uppercase key ignored", body: `{"Code":0,"ret":{"image":"/x.jpg"}}`, wantHas: false, wantImage: "/x.jpg"},
		{name: "numeric error_msg", body: `{"code":2,"error_msg":123}`, wantCode: 2, wantHas: true},
		{name: "string body", body: `"not ready"`, wantHas: false},
		{name: "array body", body: `[1]`, wantHas: false},
		{name: "uppercase image key ignored", body: `{"code":0,"ret":{"Image":"/x.jpg"}}`, wantCode: 0, wantHas: true},
		{name: "non-string image", body: `{"code":0,"ret":{"image":7}}`, wantCode: 0, wantHas: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := &Reply{StatusCode: 200, ContentType: "application/json", Body: []byte(tc.body)}
			env, err := reply.Envelope()
			if err != nil {
				t.Fatalf("envelope: %v", err)
			}
			code, ok := env.Code()
			if ok != tc.wantHas || (ok && code != tc.wantCode) {
				t.Fatalf("Code() = %v, %v; want %v, %v", code, ok, tc.wantCode, tc.wantHas)
			}
			if env.Image() != tc.wantImage {
				t.Fatalf("Image() = %q, want %q", env.Image(), tc.wantImage)
			}
		})
	}
}

func TestReplySnippetCountsRunes(t *testing.T) {
	reply := &Reply{Body: []byte(strings.Repeat("猫", 250))}
	got := reply.Snippet(SnippetLength)
	if n := len([]rune(got)); n != SnippetLength {
		t.Fatalf("snippet runes = %d, want %d", n, SnippetLength)
	}
	short := &Reply{Body: []byte("oops")}
	if short.Snippet(SnippetLength) != "oops" {
		t.Fatalf("short snippet = %q", short.Snippet(SnippetLength))
	}
}

type captureTransport struct {
	responses       map[string]responseStub
	lastPath        string
	lastContentType string
	lastBody        []byte
}

type responseStub struct {
	status int
	header http.Header
	body   []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body.Close()
	c.lastBody = body
	c.lastPath = req.URL.Path
	c.lastContentType = req.Header.Get("Content-Type")
	if stub, ok := c.responses[req.URL.Path]; ok && req.Method == http.MethodPost {
		return stub.toResponse(), nil
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func (c *captureTransport) setJSONResponse(path string, payload any) {
	body, _ := json.Marshal(payload)
	c.responses[path] = responseStub{
		status: http.StatusOK,
		header: http.Header{"Content-Type": []string{"application/json"}},
		body:   body,
	}
}

func (s responseStub) toResponse() *http.Response {
	header := http.Header{}
	for k, values := range s.header {
		header[k] = append([]string(nil), values...)
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader(s.body)),
	}
}

type failingTransport struct {
	err error
}

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestEnvelopeMessage(t *testing.T) {
	tests := map[string]string{
		`{"error_msg":"  no faces  "}`: "no faces",
		`{"error_msg":123}`:            "",
		`{"error_msg":{"detail":"x"}}`: "",
		`{"error_msg":null}`:           "",
		`{"Error_Msg":"wrong case"}`:   "",
		`{}`:                           "",
	}
	for body, want := range tests {
		env, err := (&Reply{Body: []byte(body)}).Envelope()
		if err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if got := env.Message(); got != want {
			t.Fatalf("%s: Message() = %q, want %q", body, got, want)
		}
	}
}

func TestEnvelopeRejectsInvalidJSON(t *testing.T) {
	for _, body := range []string{"", "{", "<html>", `{"code":0`} {
		if _, err := (&Reply{Body: []byte(body)}).Envelope(); err == nil {
			t.Fatalf("%q: expected decode error", body)
		}
	}
}
