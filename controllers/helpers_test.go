package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"axelmotors/controllers"
	"axelmotors/database"
	"axelmotors/database/dbtest"
	"axelmotors/events"
	"axelmotors/metrics"
	"axelmotors/models"
	"axelmotors/payment"
	"axelmotors/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}

type stubProvider struct {
	intents map[string]*payment.Intent
}

func (s *stubProvider) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_x", Amount: amount, Currency: currency, Status: "requires_payment_method"}, nil
}

func (s *stubProvider) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	intent, ok := s.intents[id]
	if !ok {
		return nil, payment.ErrNotConfirmed
	}
	return intent, nil
}

type fixture struct {
	handler   *controllers.Handler
	store     *database.GormStore
	db        *gorm.DB
	tokens    *token.Manager
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func newFixture(t *testing.T, opts ...func(*controllers.Options)) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, db := dbtest.Store(t)
	f := &fixture{
		store:     store,
		db:        db,
		tokens:    token.NewManager(testSecret, time.Hour),
		publisher: &recordingPublisher{},
		metrics:   metrics.New(prometheus.NewRegistry()),
	}
	options := controllers.Options{
		Store:    store,
		Tokens:   f.tokens,
		Payments: &stubProvider{},
		Events:   f.publisher,
		Metrics:  f.metrics,
	}
	for _, opt := range opts {
		opt(&options)
	}
	f.handler = controllers.NewHandler(options)
	return f
}

type call struct {
	method string
	target string
	body   any
	email  string
	params gin.Params
	header http.Header
}

// perform runs handler against a fresh test context, the way the router
// would after Authenticate stored the caller's email.
func perform(t *testing.T, handler gin.HandlerFunc, c call) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var body *bytes.Reader
	switch b := c.body.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(c.method, c.target, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	ctx.Request = req
	ctx.Params = c.params
	if c.email != "" {
		ctx.Set(controllers.EmailKey, c.email)
	}

	handler(ctx)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// brokenStore fails every call it does not override.
type brokenStore struct {
	database.Store
}

var errConnectionRefused = errors.New("dial tcp 127.0.0.1:5432: connection refused")

func (brokenStore) ListTools(context.Context) ([]models.Tool, error) {
	return nil, errConnectionRefused
}
