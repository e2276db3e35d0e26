package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithJSONWritesBody(t *testing.T) {
	r := NewResponder()
	rr := httptest.NewRecorder()

	r.RespondWithJSON(rr, httptest.NewRequest(http.MethodPost, "/items", nil), http.StatusCreated, map[string]int{"id": 7})

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusCreated)
	}
	if got := rr.Header().Get("Content-Type"); got != jsonContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"id":7}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestRespondWithJSONSkipsBodyForNoContent(t *testing.T) {
	r := NewResponder()
	rr := httptest.NewRecorder()

	r.RespondWithJSON(rr, nil, http.StatusNoContent, map[string]string{"ignored": "yes"})

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rr.Body.String())
	}
}

func TestRespondMessage(t *testing.T) {
	r := NewResponder()
	rr := httptest.NewRecorder()

	r.RespondMessage(rr, nil, http.StatusUnprocessableEntity, "bad")

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"message":"bad"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestRespondWithJSONReportsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewResponder(WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	rr := httptest.NewRecorder()

	r.RespondWithJSON(rr, nil, http.StatusOK, map[string]any{"ch": make(chan int)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on encode failure, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected encode failure to be logged, got %s", buf.String())
	}
}

func TestHandleAPIErrorWritesProblem(t *testing.T) {
	var buf bytes.Buffer
	r := NewResponder(
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
		WithStatusMetadata(http.StatusConflict, StatusMetadata{Title: "Already exists"}),
	)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/items/1?force=true", nil)

	r.HandleAPIError(rr, req, http.StatusConflict, errors.New("duplicate"), "create item")

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != problemContentType {
		t.Fatalf("unexpected content type: %q", got)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if problem.Title != "Already exists" || problem.Detail != "duplicate" || problem.Instance != "/items/1?force=true" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
	if problem.TraceID == "" {
		t.Fatal("expected trace id to be set")
	}
	if !strings.Contains(buf.String(), problem.TraceID) {
		t.Fatalf("expected log record to carry trace id %s, got %s", problem.TraceID, buf.String())
	}
}

func TestRespondProblemKeepsTraceIDAndSkipsLogging(t *testing.T) {
	var buf bytes.Buffer
	r := NewResponder(WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))
	rr := httptest.NewRecorder()

	r.RespondProblem(rr, httptest.NewRequest(http.MethodGet, "/items/9", nil), http.StatusNotFound, "item 9 not found", "01TRACE")

	var problem ProblemDetails
	if err := json.Unmarshal(rr.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem: %v", err)
	}
	if problem.TraceID != "01TRACE" || problem.Detail != "item 9 not found" || problem.Status != http.StatusNotFound {
		t.Fatalf("unexpected problem: %+v", problem)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %s", buf.String())
	}
}

func TestHandleAPIErrorIgnoresNil(t *testing.T) {
	rr := httptest.NewRecorder()
	NewResponder().HandleAPIError(rr, nil, http.StatusBadRequest, nil)
	if rr.Body.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", rr.Body.String())
	}
}

func TestDecodeRequestBody(t *testing.T) {
	t.Run("missing body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		var v map[string]any
		if err := DecodeRequestBody(req, &v); !errors.Is(err, ErrBodyRequired) {
			t.Fatalf("expected ErrBodyRequired, got %v", err)
		}
	})

	t.Run("empty reader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var v map[string]any
		if err := DecodeRequestBody(req, &v); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"widget"}`))
		var v struct {
			Name string `json:"name"`
		}
		if err := DecodeRequestBody(req, &v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Name != "widget" {
			t.Fatalf("unexpected name %q", v.Name)
		}
	})
}

func TestNewTraceIDIsMonotonic(t *testing.T) {
	first := NewTraceID()
	second := NewTraceID()
	if len(first) != 26 {
		t.Fatalf("expected 26 character ULID, got %q", first)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %s then %s", first, second)
	}
}
