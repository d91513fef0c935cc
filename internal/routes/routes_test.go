package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	commonRoutes "saludos/commons/routes"
	redisCache "saludos/internal/cache/redis"
	"saludos/internal/domain"
	"saludos/internal/handler"
	"saludos/internal/logger"
	"saludos/internal/moderation"
	redisQueue "saludos/internal/queue/redis"
	redisRepo "saludos/internal/repository/redis"
	"saludos/internal/service"
	"saludos/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status    string          `json:"status"`
	ErrorCode int             `json:"errorCode"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type submitData struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	JobID   string            `json:"jobId"`
}

type testServer struct {
	router *gin.Engine
	redis  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNop()
	mr := miniredis.RunT(t)

	c, err := redisCache.NewRedisCache("redis://"+mr.Addr(), "", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	repo := redisRepo.NewJobRepository(c, redisRepo.DefaultKeyPrefix, log)
	q := redisQueue.NewRedisQueue(c, redisQueue.DefaultQueueName, log)

	submission := service.NewSubmissionService(
		validation.New(validation.Config{Variant: domain.VariantFull, NarrativeMax: 80}),
		moderation.NewEngine(nil, nil, time.Second, log),
		repo,
		q,
		noopNotifier{},
		service.SubmissionConfig{Variant: domain.VariantFull},
		log,
	)

	router := commonRoutes.NewRouter(commonRoutes.RouterConfig{ServiceName: "submission"},
		commonRoutes.RouteDependencies{Logger: log})
	InitHealthRoutes(router, handler.NewHealthHandler(log, "submission", q, nil), log)
	InitGreetingRoutes(router, handler.NewGreetingHandler(submission, "/confirmacion", log), log)
	InitJobRoutes(router, handler.NewJobHandler(service.NewStatusService(repo, time.Second, log), log), log)

	return &testServer{router: router, redis: mr}
}

type noopNotifier struct{}

func (noopNotifier) JobCreated(context.Context, string) {}

func (s *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func greetingJSON(t *testing.T, overrides map[string]string) *http.Request {
	t.Helper()
	body := map[string]string{
		"nombre":            "Ana",
		"parentesco":        "abuela",
		"email":             "ana.perez",
		"emailDomain":       "@gmail.com",
		"provincia":         "Córdoba",
		"nombreNino":        "Tomás",
		"queHizo":           "Ganó el campeonato de fútbol de su escuela",
		"recuerdoEspecial":  "El viaje a la playa",
		"pedidoNocheMagica": "Una bicicleta roja",
	}
	for k, v := range overrides {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/greetings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitGreetingAcceptedThenStatus(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, greetingJSON(t, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SUCCESS", env.Status)

	var data submitData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.Success)
	assert.Equal(t, service.MessageAccepted, data.Message)
	require.NotEmpty(t, data.JobID)

	queued, err := s.redis.List(redisQueue.DefaultQueueName)
	require.NoError(t, err)
	assert.Equal(t, []string{data.JobID}, queued)
	assert.True(t, s.redis.Exists(redisRepo.DefaultKeyPrefix+data.JobID))

	for _, path := range []string{
		"/api/v1/jobs/status?videoId=" + data.JobID,
		"/api/v1/jobs/status?id=" + data.JobID,
		"/api/v1/jobs/" + data.JobID,
		"/api/generate-video?videoId=" + data.JobID,
	} {
		rec, env := s.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)

		var status struct {
			VideoID string            `json:"videoId"`
			Status  string            `json:"status"`
			Data    map[string]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &status))
		assert.Equal(t, data.JobID, status.VideoID)
		assert.Equal(t, "pending", status.Status)
		assert.Equal(t, "ana.perez@gmail.com", status.Data["email"])
	}
}

func TestJobStatusReturnsStoredDocument(t *testing.T) {
	s := newTestServer(t)

	stored := `{"videoId":"abc","status":"completed","createdAt":"2025-12-01T10:00:00","data":{"nombre":"Ana","parentesco":"tía"},"videoUrl":"https://v","extra":"kept"}`
	require.NoError(t, s.redis.Set(redisRepo.DefaultKeyPrefix+"abc", stored))

	rec, env := s.do(t, httptest.NewRequest(http.MethodGet, "/api/generate-video?videoId=abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, stored, string(env.Data))
}

func TestSubmitGreetingRejected(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, greetingJSON(t, map[string]string{"queHizo": "sos un pelotudo"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FAILED", env.Status)
	assert.Equal(t, service.MessageRejected, env.Message)

	var data submitData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.False(t, data.Success)
	assert.Empty(t, data.JobID)
	assert.Equal(t, map[string]string{"queHizo": moderation.ReasonDenylist}, data.Errors)
	assert.False(t, s.redis.Exists(redisQueue.DefaultQueueName))
}

func TestSubmitGreetingInvalidFields(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, greetingJSON(t, map[string]string{"email": "abc def", "provincia": "Gales"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var data submitData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Errors, 2)
	assert.Contains(t, data.Errors, "email")
	assert.Contains(t, data.Errors, "provincia")
}

func TestSubmitGreetingMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/greetings", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")

	rec, env := s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "FAILED", env.Status)
}

func TestSubmitGreetingFormRedirects(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{
		"nombre":            {"Ana"},
		"parentesco":        {"abuela"},
		"email":             {"ana.perez"},
		"emailDomain":       {"@gmail.com"},
		"provincia":         {"Córdoba"},
		"nombreNino":        {"Tomás"},
		"queHizo":           {"Ganó el campeonato de fútbol de su escuela"},
		"recuerdoEspecial":  {"El viaje a la playa"},
		"pedidoNocheMagica": {"Una bicicleta roja"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/greetings/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec, _ := s.do(t, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/confirmacion", location.Path)
	assert.Equal(t, url.Values{"parentesco": {"abuela"}, "nombre": {"Tomás"}}, location.Query())

	queued, err := s.redis.List(redisQueue.DefaultQueueName)
	require.NoError(t, err)
	assert.Len(t, queued, 1)
}

func TestJobStatusErrors(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, httptest.NewRequest(http.MethodGet, "/api/generate-video", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing videoId", env.Message)

	rec, env = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/status?videoId=missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Video not found", env.Message)
}

func TestJobStatusStoreDown(t *testing.T) {
	s := newTestServer(t)
	s.redis.SetError("READONLY simulated failure")

	rec, env := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/jobs/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
}

func TestSubmitGreetingStoreDown(t *testing.T) {
	s := newTestServer(t)
	s.redis.SetError("READONLY simulated failure")

	rec, env := s.do(t, greetingJSON(t, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, service.MessageFailed, env.Message)

	var data submitData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Empty(t, data.JobID)
}

func TestHealthReportsQueueDepth(t *testing.T) {
	s := newTestServer(t)
	_, err := s.redis.Lpush(redisQueue.DefaultQueueName, "a")
	require.NoError(t, err)

	rec, env := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status string `json:"status"`
		Queue  struct {
			Depth int64 `json:"depth"`
		} `json:"queue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.EqualValues(t, 1, health.Queue.Depth)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Message)
}

type panickingService struct{}

func (panickingService) Submit(context.Context, domain.GreetingRequest) service.SubmissionResult {
	panic("boom")
}

func TestPanicsBecome500(t *testing.T) {
	log := logger.NewNop()
	router := commonRoutes.NewRouter(commonRoutes.RouterConfig{}, commonRoutes.RouteDependencies{Logger: log})
	InitGreetingRoutes(router, handler.NewGreetingHandler(panickingService{}, "/confirmacion", log), log)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, greetingJSON(t, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestIDIsEchoedOrMinted(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec, _ := s.do(t, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
