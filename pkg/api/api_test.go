package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"triagedesk/pkg/models"
)

type fakeSubmitter struct {
	last  *models.QueryRequest
	res   models.TicketResult
	depth int
}

func (f *fakeSubmitter) Submit(ctx context.Context, req *models.QueryRequest) models.TicketResult {
	f.last = req
	return f.res
}

func (f *fakeSubmitter) QueueDepth() int { return f.depth }

func newTestRouter(sub *fakeSubmitter) *mux.Router {
	r := mux.NewRouter()
	NewServer(sub, nil, "test").Register(r)
	return r
}

func TestProcessQuerySuccess(t *testing.T) {
	sub := &fakeSubmitter{res: models.TicketResult{
		Success: true,
		Ticket:  &models.Ticket{TicketID: "tkt-1", QueryID: "q-1", Priority: "high"},
	}}
	r := newTestRouter(sub)

	body := `{"query_id":"q-1","query_type":"text","user_input":"locked out of my account","cibil_score":810}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process_query", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res models.TicketResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success || res.Ticket == nil || res.Ticket.TicketID != "tkt-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sub.last == nil || sub.last.QueryID != "q-1" || sub.last.CibilScore != 810 {
		t.Fatalf("request not forwarded: %+v", sub.last)
	}
}

func TestProcessQueryInvalidJSON(t *testing.T) {
	sub := &fakeSubmitter{}
	r := newTestRouter(sub)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process_query", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var res models.TicketResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Success || res.Message != "Invalid JSON format" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sub.last != nil {
		t.Fatalf("submitter should not be called on malformed input")
	}
}

func TestProcessQueryFailureStillOK(t *testing.T) {
	sub := &fakeSubmitter{res: models.Failure("Invalid query type")}
	r := newTestRouter(sub)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/process_query",
		strings.NewReader(`{"query_id":"q-2","query_type":"fax"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res models.TicketResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Success || res.Message != "Invalid query type" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHealthReportsQueueSize(t *testing.T) {
	sub := &fakeSubmitter{depth: 7}
	r := newTestRouter(sub)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Status    string `json:"status"`
		QueueSize int    `json:"queue_size"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != "running" || body.QueueSize != 7 {
		t.Fatalf("unexpected health body: %+v", body)
	}
}

func TestHealthzAndReadyz(t *testing.T) {
	r := newTestRouter(&fakeSubmitter{})

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestFeedbackUnconfigured(t *testing.T) {
	r := newTestRouter(&fakeSubmitter{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback",
		strings.NewReader(`{"id":"f-1","employee_id":"e-1"}`)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestFeedbackInvalidJSON(t *testing.T) {
	r := newTestRouter(&fakeSubmitter{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader("nope")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
