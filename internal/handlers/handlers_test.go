package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// asStaff stands in for AuthMiddleware.
func asStaff(name string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "u-"+name)
		c.Set(middleware.ContextFullName, name)
		c.Set(middleware.ContextUserRole, string(role))
		c.Next()
	}
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func perform(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type stubOrderService struct {
	services.OrderService

	order      *models.Order
	note       *models.Note
	err        error
	bulk       services.BulkResult
	lastActor  models.Actor
	lastReason string
	checkout   *services.CheckoutRequest
}

func (s *stubOrderService) ChangeStatus(_ context.Context, _ string, _ models.OrderStatus, reason string, actor models.Actor) (*models.Order, error) {
	s.lastActor, s.lastReason = actor, reason
	return s.order, s.err
}

func (s *stubOrderService) BulkChangeStatus(context.Context, []string, models.OrderStatus, string, models.Actor) services.BulkResult {
	return s.bulk
}

func (s *stubOrderService) AddNote(_ context.Context, _ string, _ string, actor models.Actor) (*models.Note, error) {
	s.lastActor = actor
	return s.note, s.err
}

func (s *stubOrderService) CloseNote(context.Context, string, string, models.Actor) (*models.Note, error) {
	return s.note, s.err
}

func (s *stubOrderService) CountUnread(string) int { return 2 }
func (s *stubOrderService) CountTotal(string) int  { return 5 }

func (s *stubOrderService) GetOrderByID(context.Context, string) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) DeleteOrder(context.Context, string, models.Actor) error { return s.err }

func (s *stubOrderService) CreateOrder(_ context.Context, req services.CheckoutRequest) (*models.Order, error) {
	s.checkout = &req
	return s.order, s.err
}

// memRepo is an in-memory CollectionRepository.
type memRepo[T any] struct {
	mu   sync.Mutex
	docs map[string]T
}

func newMemRepo[T any]() *memRepo[T] { return &memRepo[T]{docs: map[string]T{}} }

func (m *memRepo[T]) GetAll(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *memRepo[T]) GetByID(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (m *memRepo[T]) Create(_ context.Context, id string, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; ok {
		return repositories.ErrDuplicateKey
	}
	m.docs[id] = *doc
	return nil
}

func (m *memRepo[T]) Update(_ context.Context, id string, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	m.docs[id] = *doc
	return nil
}

func (m *memRepo[T]) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}
