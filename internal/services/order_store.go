package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"canvas_shop_backend/internal/cache"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"
)

const ordersCacheKey = "orders"

// OrderStore holds the orders known to the admin panel, newest first.
// Mutations take a Clone via snapshot, persist it, and only then commit it back.
type OrderStore struct {
	repo  repositories.OrderRepository
	cache cache.Cache
	ttl   time.Duration

	mu     sync.RWMutex
	orders []*models.Order
}

func NewOrderStore(repo repositories.OrderRepository, c cache.Cache, ttl time.Duration) *OrderStore {
	return &OrderStore{repo: repo, cache: c, ttl: ttl}
}

// Load fetches the lightweight order list, cache first, and merges it into memory.
func (s *OrderStore) Load(ctx context.Context) error {
	fresh, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	ptrs := make([]*models.Order, len(fresh))
	for i := range fresh {
		ptrs[i] = &fresh[i]
	}

	s.mu.Lock()
	s.orders = MergeOrders(s.orders, ptrs)
	s.mu.Unlock()
	return nil
}

func (s *OrderStore) fetch(ctx context.Context) ([]models.Order, error) {
	data, ok, err := s.cache.Get(ctx, ordersCacheKey)
	if err != nil {
		utils.LogWarn("Cache read failed", map[string]interface{}{"key": ordersCacheKey, "error": err.Error()})
	}
	if ok {
		var cached []models.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		utils.LogWarn("Discarding undecodable cache entry", map[string]interface{}{"key": ordersCacheKey})
	}

	orders, err := s.repo.GetOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}
	if data, err := json.Marshal(orders); err == nil {
		if err := s.cache.Set(ctx, ordersCacheKey, data, s.ttl); err != nil {
			utils.LogWarn("Cache write failed", map[string]interface{}{"key": ordersCacheKey, "error": err.Error()})
		}
	}
	return orders, nil
}

// snapshot returns a private copy of the order, or nil when it is not loaded.
func (s *OrderStore) snapshot(id string) *models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.orders[i].Clone()
	}
	return nil
}

// commit replaces the stored order with o. Orders removed meanwhile stay removed.
func (s *OrderStore) commit(o *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(o.ID); i >= 0 {
		s.orders[i] = o
	}
}

func (s *OrderStore) add(o *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]*models.Order{o}, s.orders...)
}

// mergeDetail stores a fully fetched order and returns the copy that won.
func (s *OrderStore) mergeDetail(fresh *models.Order) *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(fresh.ID)
	if i < 0 {
		s.orders = append([]*models.Order{fresh}, s.orders...)
		return fresh.Clone()
	}
	existing := s.orders[i]
	if !keepExisting(existing, fresh) {
		s.orders[i] = fresh
		return fresh.Clone()
	}
	if existing.HasPlaceholderItems() {
		existing.Items = fresh.Items
	}
	return existing.Clone()
}

func (s *OrderStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		s.orders = append(s.orders[:i], s.orders[i+1:]...)
		return true
	}
	return false
}

// List filters by status and a case-insensitive search over order number, customer name and email.
// It returns the requested page and the total number of matches.
func (s *OrderStore) List(filters models.OrderFilters) ([]models.Order, int) {
	status := strings.TrimSpace(utils.DerefString(filters.Status))
	search := strings.ToLower(strings.TrimSpace(utils.DerefString(filters.Search)))

	s.mu.RLock()
	matches := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if search != "" && !orderMatches(o, search) {
			continue
		}
		matches = append(matches, *o.Clone())
	}
	s.mu.RUnlock()

	total := len(matches)
	if filters.PageSize <= 0 {
		return matches, total
	}
	page := max(filters.Page, 1)
	start := (page - 1) * filters.PageSize
	if start >= total {
		return []models.Order{}, total
	}
	end := min(start+filters.PageSize, total)
	return matches[start:end], total
}

func (s *OrderStore) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, ordersCacheKey); err != nil {
		utils.LogWarn("Cache invalidation failed", map[string]interface{}{"key": ordersCacheKey, "error": err.Error()})
	}
}

func (s *OrderStore) clear() {
	s.mu.Lock()
	s.orders = nil
	s.mu.Unlock()
}

func (s *OrderStore) indexLocked(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func orderMatches(o *models.Order, needle string) bool {
	for _, hay := range []string{o.OrderNumber, o.Customer.Name, o.Customer.Email, o.Customer.Phone} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
