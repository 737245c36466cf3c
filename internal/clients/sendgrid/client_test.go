package sendgrid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/codetrack-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return log
}

func newTestClient(t *testing.T, baseURL string, maxRetries int) Client {
	t.Helper()
	c, err := New(testLogger(t), Config{
		APIKey:           "test-key",
		BaseURL:          baseURL,
		DefaultFromEmail: "noreply@codetrack.dev",
		DefaultFromName:  "CodeTrack",
		Timeout:          5 * time.Second,
		MaxRetries:       maxRetries,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSendBuildsMailSendPayload(t *testing.T) {
	var got mailSendRequest
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Errorf("path = %q, want /v3/mail/send", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("X-Message-Id", "msg-123")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	result, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "alice@example.com", Name: "Alice"}},
		Subject: "Reminder",
		Text:    "Get back to solving!",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", auth)
	}
	if result.StatusCode != http.StatusAccepted || result.MessageID != "msg-123" {
		t.Errorf("result = %+v, want 202/msg-123", result)
	}
	if got.From.Email != "noreply@codetrack.dev" {
		t.Errorf("From = %q, want the configured default", got.From.Email)
	}
	if len(got.Personalizations) != 1 || len(got.Personalizations[0].To) != 1 {
		t.Fatalf("personalizations = %+v, want one recipient", got.Personalizations)
	}
	if len(got.Content) != 1 || got.Content[0].Type != "text/plain" {
		t.Errorf("content = %+v, want one text/plain part", got.Content)
	}
}

func TestSendRetriesOnTooManyRequests(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	result, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "bob@example.com"}},
		Subject: "Reminder",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("Send after retry: %v", err)
	}
	if result.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", result.StatusCode)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestSendBadRequestIsFatal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"does not contain a valid address"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Send(context.Background(), SendEmailRequest{
		To:      []EmailAddress{{Email: "broken"}},
		Subject: "Reminder",
		Text:    "hello",
	})
	if err == nil {
		t.Fatal("expected error on 400")
	}

	httpErr, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("err type = %T, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.StatusCode)
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Message != "does not contain a valid address" {
		t.Errorf("parsed errors = %+v", httpErr.Errors)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("calls = %d, 400 must not be retried", calls)
	}
}

func TestSendValidatesRequest(t *testing.T) {
	c := newTestClient(t, "http://localhost:1", 1)

	cases := []struct {
		name string
		req  SendEmailRequest
	}{
		{name: "no_recipients", req: SendEmailRequest{Subject: "s", Text: "t"}},
		{name: "no_subject", req: SendEmailRequest{To: []EmailAddress{{Email: "a@b.c"}}, Text: "t"}},
		{name: "no_text", req: SendEmailRequest{To: []EmailAddress{{Email: "a@b.c"}}, Subject: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := c.Send(context.Background(), tc.req); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
