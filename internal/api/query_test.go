package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"

	apierrors "github.com/diogo/biotutor/internal/errors"
)

func newTestClient(t *testing.T, mock *fakeTransport) *Client {
	t.Helper()
	client, err := NewClient("http://localhost:8000", WithHTTPClient(mock))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return client
}

func TestSubmitQuery_Success(t *testing.T) {
	mock := newFakeTransport([]byte(`{"answer":"X","sources":["a","b"]}`), 200)
	client := newTestClient(t, mock)

	answer, err := client.SubmitQuery("What is ATP?")
	if err != nil {
		t.Fatalf("SubmitQuery() error: %v", err)
	}
	if answer.Text != "X" {
		t.Errorf("Text = %q, want %q", answer.Text, "X")
	}
	if len(answer.Sources) != 2 || answer.Sources[0] != "a" || answer.Sources[1] != "b" {
		t.Errorf("Sources = %v, want [a b]", answer.Sources)
	}
}

func TestSubmitQuery_RequestShape(t *testing.T) {
	mock := newFakeTransport([]byte(`{"answer":"ok"}`), 200)
	client := newTestClient(t, mock)

	if _, err := client.SubmitQuery("What is ATP?"); err != nil {
		t.Fatalf("SubmitQuery() error: %v", err)
	}

	if len(mock.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(mock.requests))
	}
	req := mock.requests[0]

	if req.Method != "POST" {
		t.Errorf("Method = %s, want POST", req.Method)
	}
	if req.URL.String() != "http://localhost:8000/chat" {
		t.Errorf("URL = %s, want http://localhost:8000/chat", req.URL.String())
	}
	if req.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request ID header")
	}

	fields := formFields(t, req, mock.bodies[0])
	if fields["message"] != "What is ATP?" {
		t.Errorf("message field = %q, want %q", fields["message"], "What is ATP?")
	}
}

func TestSubmitQuery_MissingSourcesIsEmpty(t *testing.T) {
	client := newTestClient(t, newFakeTransport([]byte(`{"answer":"X"}`), 200))

	answer, err := client.SubmitQuery("q")
	if err != nil {
		t.Fatalf("SubmitQuery() error: %v", err)
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("Sources = %#v, want empty slice", answer.Sources)
	}
}

func TestSubmitQuery_Failures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		status     int
		wantStatus int
		wantParse  bool
	}{
		{"server error", `{"detail":"boom"}`, 500, 500, false},
		{"not found", `not found`, 404, 404, false},
		{"missing answer", `{"sources":["a"]}`, 200, 0, true},
		{"empty answer", `{"answer":""}`, 200, 0, true},
		{"null answer", `{"answer":null}`, 200, 0, true},
		{"numeric answer", `{"answer":42}`, 200, 0, true},
		{"invalid json", `<html>`, 200, 0, true},
		{"array body", `["answer"]`, 200, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, newFakeTransport([]byte(tt.body), tt.status))

			answer, err := client.SubmitQuery("q")
			if err == nil {
				t.Fatalf("expected error, got answer %+v", answer)
			}
			if answer != nil {
				t.Errorf("expected nil answer on failure")
			}
			if got := apierrors.GetHTTPStatus(err); got != tt.wantStatus {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
			if got := apierrors.IsParseError(err); got != tt.wantParse {
				t.Errorf("IsParseError() = %v, want %v", got, tt.wantParse)
			}
		})
	}
}

func TestSubmitQuery_MissingAnswerSentinel(t *testing.T) {
	client := newTestClient(t, newFakeTransport([]byte(`{"foo":"bar"}`), 200))

	_, err := client.SubmitQuery("q")
	if !errors.Is(err, apierrors.ErrMissingAnswer) {
		t.Errorf("expected ErrMissingAnswer, got %v", err)
	}
}

func TestSubmitQuery_ServerErrorKeepsBody(t *testing.T) {
	client := newTestClient(t, newFakeTransport([]byte(`Internal Server Error`), 500))

	_, err := client.SubmitQuery("q")
	if body := apierrors.GetResponseBody(err); body != "Internal Server Error" {
		t.Errorf("GetResponseBody() = %q", body)
	}
	if endpoint := apierrors.GetEndpoint(err); endpoint != "http://localhost:8000/chat" {
		t.Errorf("GetEndpoint() = %q", endpoint)
	}
}

func TestSubmitQuery_NetworkError(t *testing.T) {
	client := newTestClient(t, newFailingTransport(fmt.Errorf("connection refused")))

	_, err := client.SubmitQuery("q")
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestSubmitQuery_EmptyText(t *testing.T) {
	mock := newFakeTransport([]byte(`{"answer":"x"}`), 200)
	client := newTestClient(t, mock)

	if _, err := client.SubmitQuery(""); err == nil {
		t.Error("expected error for empty query")
	}
	if len(mock.requests) != 0 {
		t.Error("no request should be sent for an empty query")
	}
}

func TestParseAnswer_SkipsNonStringSources(t *testing.T) {
	answer, err := parseAnswer([]byte(`{"answer":"X","sources":["a",1,null,"b",{"k":"v"}]}`))
	if err != nil {
		t.Fatalf("parseAnswer() error: %v", err)
	}
	if len(answer.Sources) != 2 || answer.Sources[0] != "a" || answer.Sources[1] != "b" {
		t.Errorf("Sources = %v, want [a b]", answer.Sources)
	}
}

func TestParseAnswer_NonArraySources(t *testing.T) {
	answer, err := parseAnswer([]byte(`{"answer":"X","sources":"chapter 1"}`))
	if err != nil {
		t.Fatalf("parseAnswer() error: %v", err)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", answer.Sources)
	}
}

func TestSubmitQuery_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"answer":"echo: %s","sources":["lecture-3.pdf"]}`, r.FormValue("message"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	defer client.Close()

	answer, err := client.SubmitQuery("osmosis")
	if err != nil {
		t.Fatalf("SubmitQuery() error: %v", err)
	}
	if answer.Text != "echo: osmosis" {
		t.Errorf("Text = %q", answer.Text)
	}
	if len(answer.Sources) != 1 || answer.Sources[0] != "lecture-3.pdf" {
		t.Errorf("Sources = %v", answer.Sources)
	}
}

func TestSubmitQuery_SlowBackend(t *testing.T) {
	saved := tls_client.DefaultTimeoutSeconds
	tls_client.DefaultTimeoutSeconds = 1
	t.Cleanup(func() { tls_client.DefaultTimeoutSeconds = saved })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"answer":"slow but fine"}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	defer client.Close()

	answer, err := client.SubmitQuery("explain the Krebs cycle")
	if err != nil {
		t.Fatalf("SubmitQuery() should wait for a slow backend, got: %v", err)
	}
	if answer.Text != "slow but fine" {
		t.Errorf("Text = %q", answer.Text)
	}
}

func TestSubmitQuery_FollowsRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat":
			http.Redirect(w, r, "/v2/chat", http.StatusTemporaryRedirect)
		case "/v2/chat":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"answer":"moved: %s"}`, r.FormValue("message"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	defer client.Close()

	answer, err := client.SubmitQuery("diffusion")
	if err != nil {
		t.Fatalf("SubmitQuery() error: %v", err)
	}
	if answer.Text != "moved: diffusion" {
		t.Errorf("Text = %q", answer.Text)
	}
}
