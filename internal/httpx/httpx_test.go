package httpx

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/andybalholm/brotli"
)

const exampleURL = "https://example.com/v0/courses"

// Mock HTTP RoundTripper for testing
type mockRoundTripper struct {
	responses []*http.Response
	errors    []error
	requests  []*http.Request
	index     int
	mux       sync.Mutex
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.requests = append(m.requests, req)
	if m.index >= len(m.responses) {
		return nil, errors.New("no more responses")
	}

	resp := m.responses[m.index]
	err := m.errors[m.index]
	m.index++
	return resp, err
}

func newMockClient(responses []*http.Response, errs []error) (*http.Client, *mockRoundTripper) {
	for i := len(errs); i < len(responses); i++ {
		errs = append(errs, nil)
	}
	rt := &mockRoundTripper{responses: responses, errors: errs}
	return &http.Client{Transport: rt}, rt
}

func newMockResponse(statusCode int, body []byte, headers map[string]string) *http.Response {
	header := http.Header{}
	for k, v := range headers {
		header.Set(k, v)
	}
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     header,
	}
}

func getReq(ctx context.Context) (*http.Request, error) {
	return NewGet(ctx, exampleURL)
}

func TestSnippet(t *testing.T) {
	testCases := []struct {
		input    string
		max      int
		expected string
	}{
		{"short text", 100, "short text"},
		{"", 100, ""},
		{"  trimmed  ", 100, "trimmed"},
		{"long text that should be truncated", 10, "long text …"},
		{"Introducción", 11, "Introducci…"},
		{"Introducción", 12, "Introducció…"},
		{"Introducción", 13, "Introducción"},
		{"日本語", 4, "日…"},
		{"日本語", 2, "…"},
	}

	for _, tc := range testCases {
		result := snippet([]byte(tc.input), tc.max)
		if result != tc.expected {
			t.Errorf("snippet(%q, %d) = %q, want %q", tc.input, tc.max, result, tc.expected)
		}
		if !utf8.ValidString(result) {
			t.Errorf("snippet(%q, %d) = %q is not valid UTF-8", tc.input, tc.max, result)
		}
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{
		Method:     "GET",
		URL:        "https://example.com",
		StatusCode: 404,
		Body:       []byte("Not Found"),
	}

	expected := "http error: GET https://example.com status=404 body=Not Found"
	if err.Error() != expected {
		t.Errorf("HTTPError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewGetHeaders(t *testing.T) {
	req, err := NewGet(context.Background(), exampleURL)
	if err != nil {
		t.Fatalf("NewGet() error = %v", err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("Method = %q, want GET", req.Method)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q, want application/json", got)
	}
	if got := req.Header.Get("Accept-Encoding"); got != AcceptEncoding {
		t.Errorf("Accept-Encoding = %q, want %q", got, AcceptEncoding)
	}
}

func TestDoSuccess(t *testing.T) {
	client, _ := newMockClient(
		[]*http.Response{newMockResponse(200, []byte(`[{"course_code":"CMSC131"}]`), nil)},
		nil,
	)

	resp, body, err := Do(context.Background(), client, getReq)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status code 200, got %d", resp.StatusCode)
	}
	if string(body) != `[{"course_code":"CMSC131"}]` {
		t.Errorf("Unexpected body %q", string(body))
	}
}

func TestDoBuildReqError(t *testing.T) {
	client, rt := newMockClient(nil, nil)

	_, _, err := Do(context.Background(), client, func(ctx context.Context) (*http.Request, error) {
		return nil, errors.New("request build error")
	})
	if err == nil || !strings.Contains(err.Error(), "request build error") {
		t.Errorf("Expected request build error, got %v", err)
	}
	if len(rt.requests) != 0 {
		t.Errorf("Expected no requests, got %d", len(rt.requests))
	}
}

func TestDoTransportErrorIsNotRetried(t *testing.T) {
	client, rt := newMockClient(
		[]*http.Response{nil, newMockResponse(200, []byte(`[]`), nil)},
		[]error{errors.New("connection reset by peer"), nil},
	)

	_, _, err := Do(context.Background(), client, getReq)
	if err == nil || !strings.Contains(err.Error(), "connection reset by peer") {
		t.Errorf("Expected transport error, got %v", err)
	}
	if len(rt.requests) != 1 {
		t.Errorf("Expected exactly 1 request, got %d", len(rt.requests))
	}
}

func TestDoNon2xx(t *testing.T) {
	client, rt := newMockClient(
		[]*http.Response{
			newMockResponse(503, []byte(`{"error":"unavailable"}`), nil),
			newMockResponse(200, []byte(`[]`), nil),
		},
		nil,
	)

	resp, body, err := Do(context.Background(), client, getReq)

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Expected *HTTPError, got %T (%v)", err, err)
	}
	if herr.StatusCode != 503 || herr.Method != http.MethodGet || herr.URL != exampleURL {
		t.Errorf("Unexpected HTTPError %+v", herr)
	}
	if resp == nil || resp.StatusCode != 503 {
		t.Errorf("Expected response with status 503")
	}
	if string(body) != `{"error":"unavailable"}` {
		t.Errorf("Unexpected body %q", string(body))
	}
	if len(rt.requests) != 1 {
		t.Errorf("Expected exactly 1 request, got %d", len(rt.requests))
	}
}

func TestDoDecodesBrotli(t *testing.T) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write([]byte(`["br"]`)); err != nil {
		t.Fatal(err)
	}
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}

	client, _ := newMockClient(
		[]*http.Response{newMockResponse(200, buf.Bytes(), map[string]string{"Content-Encoding": "br"})},
		nil,
	)

	var out []string
	if err := DoJSON(context.Background(), client, getReq, &out); err != nil {
		t.Fatalf("DoJSON() error = %v", err)
	}
	if len(out) != 1 || out[0] != "br" {
		t.Errorf("DoJSON() = %v, want [br]", out)
	}
}

func TestDoDecodesGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(`["gz"]`)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	client, _ := newMockClient(
		[]*http.Response{newMockResponse(200, buf.Bytes(), map[string]string{"Content-Encoding": "gzip"})},
		nil,
	)

	var out []string
	if err := DoJSON(context.Background(), client, getReq, &out); err != nil {
		t.Fatalf("DoJSON() error = %v", err)
	}
	if len(out) != 1 || out[0] != "gz" {
		t.Errorf("DoJSON() = %v, want [gz]", out)
	}
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodedBodyGzipIsClosable(t *testing.T) {
	body := &closeRecorder{Reader: bytes.NewReader(gzipped(t, `[]`))}
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   body,
	}

	r, err := decodedBody(resp)
	if err != nil {
		t.Fatalf("decodedBody() error = %v", err)
	}
	if _, ok := r.(*gzip.Reader); !ok {
		t.Fatalf("decodedBody() = %T, want *gzip.Reader", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if body.closed {
		t.Error("closing the decoder closed the response body")
	}
}

func TestReadAndCloseGzipClosesBody(t *testing.T) {
	body := &closeRecorder{Reader: bytes.NewReader(gzipped(t, `["gz"]`))}
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   body,
	}

	b, err := readAndClose(resp)
	if err != nil {
		t.Fatalf("readAndClose() error = %v", err)
	}
	if string(b) != `["gz"]` {
		t.Errorf("readAndClose() = %q, want %q", b, `["gz"]`)
	}
	if !body.closed {
		t.Error("readAndClose() left the response body open")
	}
}

func TestDoJSONParseError(t *testing.T) {
	client, _ := newMockClient(
		[]*http.Response{newMockResponse(200, []byte(`<html>bad gateway</html>`), nil)},
		nil,
	)

	var out []map[string]any
	err := DoJSON(context.Background(), client, getReq, &out)
	if err == nil {
		t.Fatal("Expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), "json parse error") || !strings.Contains(err.Error(), "<html>bad gateway</html>") {
		t.Errorf("Unexpected error %q", err.Error())
	}
}

func TestDoJSONNilOut(t *testing.T) {
	client, _ := newMockClient(
		[]*http.Response{newMockResponse(200, []byte(`not json`), nil)},
		nil,
	)

	if err := DoJSON(context.Background(), client, getReq, nil); err != nil {
		t.Errorf("Expected no error with nil out, got %v", err)
	}
}

func TestGetJSON(t *testing.T) {
	client, rt := newMockClient(
		[]*http.Response{newMockResponse(200, []byte(`[{"course_id":"X2"}]`), nil)},
		nil,
	)

	var out []map[string]any
	if err := GetJSON(context.Background(), client, exampleURL+"?limit=2", &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if len(out) != 1 || out[0]["course_id"] != "X2" {
		t.Errorf("GetJSON() = %v", out)
	}
	if got := rt.requests[0].URL.String(); got != exampleURL+"?limit=2" {
		t.Errorf("requested %q", got)
	}
}
