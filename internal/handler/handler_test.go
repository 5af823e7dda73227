package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/attendance"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/repository"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (kv *memKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	value, found := kv.data[key]
	return value, found, nil
}

func (kv *memKV) Set(_ context.Context, key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

func (kv *memKV) Del(_ context.Context, keys ...string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	for _, key := range keys {
		delete(kv.data, key)
	}
	return nil
}

type stubPublisher struct {
	keys      []string
	published []amqp.Publishing
}

func (p *stubPublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	p.keys = append(p.keys, key)
	p.published = append(p.published, msg)
	return nil
}

type stubLimiter struct {
	busy     bool
	acquires int
	releases int
}

func (l *stubLimiter) TryAcquire(_ context.Context) (bool, error) {
	l.acquires++
	return !l.busy, nil
}

func (l *stubLimiter) Release(_ context.Context) error {
	l.releases++
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *stubPublisher, *stubLimiter) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Redis.OperationTimeout = 5
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.Email.Recipient = "eddy.rxwl@hotmail.com"

	repo := repository.NewRepository(cfg, newMemKV())
	service := attendance.NewService(repo)

	publisher := &stubPublisher{}
	limiter := &stubLimiter{}

	h, err := NewHandler(cfg, service, publisher, limiter)
	require.NoError(t, err)
	h.RegisterRoutes()

	return h, publisher, limiter
}

func doRequest(t *testing.T, h *Handler, method, path string, body any) Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := Response{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func addWorker(t *testing.T, h *Handler, name string) string {
	t.Helper()

	resp := doRequest(t, h, http.MethodPost, "/workers", map[string]string{"name": name})
	require.True(t, resp.Success, resp.Message)

	data := resp.Data.(map[string]any)
	return data["id"].(string)
}

func TestCreateWorkerTrimsName(t *testing.T) {
	h, _, _ := newTestHandler(t)

	resp := doRequest(t, h, http.MethodPost, "/workers", map[string]string{"name": "  Alice  "})
	require.True(t, resp.Success)
	require.Equal(t, "Alice", resp.Data.(map[string]any)["name"])

	list := doRequest(t, h, http.MethodGet, "/workers", nil)
	require.True(t, list.Success)
	require.Len(t, list.Data.([]any), 1)
}

func TestCreateWorkerRejectsShortName(t *testing.T) {
	h, _, _ := newTestHandler(t)

	for _, name := range []string{"", "A", "  B  "} {
		resp := doRequest(t, h, http.MethodPost, "/workers", map[string]string{"name": name})
		require.False(t, resp.Success, "name %q", name)
	}

	list := doRequest(t, h, http.MethodGet, "/workers", nil)
	require.Empty(t, list.Data)
}

func TestCreateWorkerRejectsDuplicateCaseInsensitive(t *testing.T) {
	h, _, _ := newTestHandler(t)

	addWorker(t, h, "Bob")

	resp := doRequest(t, h, http.MethodPost, "/workers", map[string]string{"name": "bob"})
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "already exists")

	list := doRequest(t, h, http.MethodGet, "/workers", nil)
	require.Len(t, list.Data.([]any), 1)
}

func TestDeleteWorkerIsIdempotent(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodDelete, "/workers/"+id, nil)
	require.True(t, resp.Success)

	resp = doRequest(t, h, http.MethodDelete, "/workers/"+id, nil)
	require.True(t, resp.Success)

	list := doRequest(t, h, http.MethodGet, "/workers", nil)
	require.Empty(t, list.Data)
}

func TestToggleAttendance(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodPost, "/workers/"+id+"/attendance/monday", nil)
	require.True(t, resp.Success)

	records := doRequest(t, h, http.MethodGet, "/attendance", nil)
	record := records.Data.([]any)[0].(map[string]any)
	require.Equal(t, true, record["monday"])
	require.Equal(t, false, record["tuesday"])
}

func TestToggleAttendanceRejectsInvalidDay(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodPost, "/workers/"+id+"/attendance/funday", nil)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "invalid day")
}

func TestToggleAttendanceUnknownWorkerIsNoop(t *testing.T) {
	h, _, _ := newTestHandler(t)

	resp := doRequest(t, h, http.MethodPost, "/workers/nope/attendance/monday", nil)
	require.True(t, resp.Success)
}

func TestGenerateReportRejectsEmptyState(t *testing.T) {
	h, publisher, limiter := newTestHandler(t)

	resp := doRequest(t, h, http.MethodPost, "/reports", nil)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "no attendance data")
	require.Empty(t, publisher.published)
	require.Zero(t, limiter.acquires)
}

func TestGenerateReportPublishesJob(t *testing.T) {
	h, publisher, limiter := newTestHandler(t)

	id := addWorker(t, h, "Alice")
	doRequest(t, h, http.MethodPost, "/workers/"+id+"/attendance/monday", nil)

	resp := doRequest(t, h, http.MethodPost, "/reports", nil)
	require.True(t, resp.Success, resp.Message)
	require.Equal(t, 1, limiter.acquires)
	require.Zero(t, limiter.releases)

	require.Equal(t, []string{domain.ReportQueueName}, publisher.keys)
	require.Len(t, publisher.published, 1)
	require.Equal(t, "application/json", publisher.published[0].ContentType)

	job := domain.ReportJob{}
	require.NoError(t, json.Unmarshal(publisher.published[0].Body, &job))
	require.Equal(t, "eddy.rxwl@hotmail.com", job.To)
	require.Len(t, job.Report.Rows, 2) // Alice + summary
	require.Equal(t, "Alice", job.Report.Rows[0].WorkerName)
	require.Equal(t, "1/7", job.Report.Rows[1].Total)
}

func TestGenerateReportRecipientOverride(t *testing.T) {
	h, publisher, _ := newTestHandler(t)

	addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodPost, "/reports", map[string]string{"recipient": "boss@example.com"})
	require.True(t, resp.Success)

	job := domain.ReportJob{}
	require.NoError(t, json.Unmarshal(publisher.published[0].Body, &job))
	require.Equal(t, "boss@example.com", job.To)
}

func TestGenerateReportRejectsInvalidRecipient(t *testing.T) {
	h, publisher, _ := newTestHandler(t)

	addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodPost, "/reports", map[string]string{"recipient": "not-an-email"})
	require.False(t, resp.Success)
	require.Empty(t, publisher.published)
}

func TestGenerateReportWhileBusy(t *testing.T) {
	h, publisher, limiter := newTestHandler(t)
	limiter.busy = true

	addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodPost, "/reports", nil)
	require.False(t, resp.Success)
	require.Contains(t, resp.Message, "already being generated")
	require.Empty(t, publisher.published)
}

func TestClearAllDataRequiresConfirmation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	addWorker(t, h, "Alice")

	resp := doRequest(t, h, http.MethodDelete, "/data", nil)
	require.False(t, resp.Success)

	resp = doRequest(t, h, http.MethodDelete, "/data", map[string]bool{"confirm": false})
	require.False(t, resp.Success)

	list := doRequest(t, h, http.MethodGet, "/workers", nil)
	require.Len(t, list.Data.([]any), 1)

	resp = doRequest(t, h, http.MethodDelete, "/data", map[string]bool{"confirm": true})
	require.True(t, resp.Success)

	list = doRequest(t, h, http.MethodGet, "/workers", nil)
	require.Empty(t, list.Data)
}

func TestSummary(t *testing.T) {
	h, _, _ := newTestHandler(t)

	id := addWorker(t, h, "Alice")
	doRequest(t, h, http.MethodPost, "/workers/"+id+"/attendance/monday", nil)
	doRequest(t, h, http.MethodPost, "/workers/"+id+"/attendance/friday", nil)

	resp := doRequest(t, h, http.MethodGet, "/summary", nil)
	require.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	require.Equal(t, "eddy.rxwl@hotmail.com", data["recipient"])
	require.Equal(t, float64(1), data["workerCount"])
	require.Equal(t, float64(2), data["totalPresentDays"])
	require.NotEmpty(t, data["weekStart"])
	require.NotEmpty(t, data["weekEnd"])
}
