package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

const layoutBody = `{
  "tags": [
    {"tag": "go", "weight": 50, "link": "https://go.dev"},
    {"tag": "rust", "weight": 40},
    {"tag": "zig", "weight": 30}
  ],
  "options": {"width": 400}
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	logger := log.New(&strings.Builder{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(New(runner, append([]Option{WithLogger(logger)}, opts...)...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("missing request ID: %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestFormats(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out []struct {
		Name        string `json:"name"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(pipeline.Formats) {
		t.Errorf("got %d formats, want %d", len(out), len(pipeline.Formats))
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/v1/layout", layoutBody)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}

	var out LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Stats.Tags != 3 || out.Stats.Records != 3 {
		t.Errorf("stats = %+v", out.Stats)
	}
	if out.Layout == nil || out.Layout.Config.ContainerWidth != 400 {
		t.Fatalf("layout = %+v", out.Layout)
	}
	if out.Layout.ID == "" {
		t.Error("layout has no ID")
	}
}

func TestLayoutFromHTMLData(t *testing.T) {
	srv := newTestServer(t)
	body := `{"data": "<ul><li data-weight=\"2\">a</li><li data-weight=\"1\">b</li></ul>", "format": "html"}`
	resp := post(t, srv.URL+"/v1/layout", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}
	var out LayoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Stats.Tags != 2 {
		t.Errorf("tags = %d, want 2", out.Stats.Tags)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"html", "text/html; charset=utf-8", `class="jqTcTag"`},
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", `"rows"`},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph cloud"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/render/"+tt.format, layoutBody)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if resp.Header.Get("X-Layout-ID") == "" {
				t.Error("missing X-Layout-ID")
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, WithMaxBodyBytes(512))
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"unknown format", "/v1/render/gif", layoutBody, http.StatusNotFound, errors.ErrCodeUnsupported},
		{"bad json", "/v1/layout", "{", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"unknown field", "/v1/layout", `{"tagz": []}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad config", "/v1/layout", `{"tags": [], "options": {"width": -1}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad weight", "/v1/layout", `{"tags": [{"tag": "a", "weight": "x"}]}`, http.StatusUnprocessableEntity, errors.ErrCodeInvalidWeight},
		{"too large", "/v1/layout", `{"data": "` + strings.Repeat("x", 1024) + `"}`, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if e.Error.Code != string(tt.code) {
				t.Errorf("code = %q, want %s", e.Error.Code, tt.code)
			}
			if e.RequestID == "" {
				t.Error("error body has no request ID")
			}
		})
	}
}

func TestErrorDetailsListEveryRecord(t *testing.T) {
	srv := newTestServer(t)
	body := `{"tags": [{"tag": "a", "weight": "x"}, {"tag": "b", "weight": 1}, {"tag": "c", "weight": null}]}`
	resp := post(t, srv.URL+"/v1/layout", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	e := decodeError(t, resp)
	if len(e.Error.Details) != 2 {
		t.Errorf("details = %v, want 2 entries", e.Error.Details)
	}
}

func TestConcurrentIdenticalRequests(t *testing.T) {
	srv := newTestServer(t)
	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/v1/render/svg", "application/json", strings.NewReader(layoutBody))
			if err != nil {
				t.Error(err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
			ids[i] = resp.Header.Get("X-Layout-ID")
		}()
	}
	wg.Wait()
	for _, id := range ids {
		if id == "" {
			t.Error("missing layout ID")
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeInvalidWeight, http.StatusUnprocessableEntity},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
