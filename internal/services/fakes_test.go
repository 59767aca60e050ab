package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"canvas_shop_backend/internal/cache"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
)

var errGateway = errors.New("gateway unavailable")

type fakeCollectionRepo[T any] struct {
	mu      sync.Mutex
	docs    map[string]T
	order   []string
	getAlls int
	failAll error
}

func newFakeCollectionRepo[T any](id func(*T) string, docs ...T) *fakeCollectionRepo[T] {
	r := &fakeCollectionRepo[T]{docs: map[string]T{}}
	for _, d := range docs {
		k := id(&d)
		r.docs[k] = d
		r.order = append(r.order, k)
	}
	return r
}

func (r *fakeCollectionRepo[T]) GetAll(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getAlls++
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := []T{}
	for _, k := range r.order {
		if d, ok := r.docs[k]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeCollectionRepo[T]) GetByID(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

func (r *fakeCollectionRepo[T]) Create(_ context.Context, id string, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; ok {
		return repositories.ErrDuplicateKey
	}
	r.docs[id] = *doc
	r.order = append(r.order, id)
	return nil
}

func (r *fakeCollectionRepo[T]) Update(_ context.Context, id string, doc *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	r.docs[id] = *doc
	return nil
}

func (r *fakeCollectionRepo[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type fakeOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*models.Order
	failIDs    map[string]bool
	createWait time.Duration
	statusCall int
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*models.Order{}, failIDs: map[string]bool{}}
	for _, o := range orders {
		r.orders[o.ID] = o.Clone()
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	if r.createWait > 0 {
		select {
		case <-time.After(r.createWait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o.Clone()
	return nil
}

// GetOrders mimics the list query: items are replaced by their count.
func (r *fakeOrderRepo) GetOrders(context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.orders {
		c := o.Clone()
		c.ItemsCount = len(c.Items)
		c.Items = nil
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrderByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := o.Clone()
	c.ItemsCount = len(c.Items)
	return c, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusCall++
	if r.failIDs[o.ID] {
		return errGateway
	}
	stored, ok := r.orders[o.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Status = o.Status
	stored.StatusHistory = o.Clone().StatusHistory
	stored.Notes = o.Clone().Notes
	return nil
}

func (r *fakeOrderRepo) UpdateOrderNotes(_ context.Context, id string, notes []models.Note, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[id] {
		return errGateway
	}
	stored, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Notes = append([]models.Note(nil), notes...)
	return nil
}

func (r *fakeOrderRepo) UpdateOrderShipping(_ context.Context, id string, s *models.Shipping, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	cp := *s
	stored.Shipping = &cp
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeAuthRepo struct {
	mu    sync.Mutex
	users map[string]models.AdminUser
}

func newFakeAuthRepo(users ...models.AdminUser) *fakeAuthRepo {
	r := &fakeAuthRepo{users: map[string]models.AdminUser{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeAuthRepo) CreateUser(_ context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repositories.ErrDuplicateKey
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeAuthRepo) FindUserByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAuthRepo) FindUserByID(_ context.Context, id string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (r *fakeAuthRepo) GetUsers(context.Context) ([]models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.AdminUser{}
	for _, u := range r.users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeAuthRepo) UpdateUser(_ context.Context, u *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.FullName, stored.Email, stored.Role, stored.IsActive = u.FullName, u.Email, u.Role, u.IsActive
	r.users[u.ID] = stored
	return nil
}

func (r *fakeAuthRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.PasswordHash = hash
	r.users[id] = stored
	return nil
}

func (r *fakeAuthRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
	shipped   []string
	err       error
}

func (n *fakeNotifier) SendOrderConfirmation(_ context.Context, o *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, o.ID)
	return n.err
}

func (n *fakeNotifier) SendShippedNotice(_ context.Context, o *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shipped = append(n.shipped, o.ID)
	return n.err
}

func (n *fakeNotifier) shippedIDs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.shipped...)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (a *fakeAudit) Record(_ context.Context, e *models.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, *e)
	return nil
}

func (a *fakeAudit) ListForOrder(_ context.Context, orderID string, _ int64) ([]models.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := []models.AuditEntry{}
	for _, e := range a.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *fakeAudit) Close(context.Context) error { return nil }

// testEnv wires an AppState over in-memory fakes.
type testEnv struct {
	state  *AppState
	cache  *cache.MemoryCache
	orders *fakeOrderRepo
	sizes  *fakeCollectionRepo[models.CanvasSize]
	paints *fakeCollectionRepo[models.Painting]
	client *fakeCollectionRepo[models.Client]
	users  *fakeAuthRepo
}

func newTestEnv(orders ...*models.Order) *testEnv {
	env := &testEnv{
		cache:  cache.NewMemoryCache(),
		orders: newFakeOrderRepo(orders...),
		sizes: newFakeCollectionRepo(func(s *models.CanvasSize) string { return s.ID },
			sampleSize(),
			models.CanvasSize{ID: "s-50x70", Width: 50, Height: 70, Price: d("200"), Discount: d("0"), IsActive: true},
		),
		paints: newFakeCollectionRepo(func(p *models.Painting) string { return p.ID },
			models.Painting{ID: "p1", Title: "Sea", ImageURL: "https://img/sea.jpg", Category: "nature", AvailableSizes: []string{"s-30x40", "s-50x70"}, IsActive: true},
			models.Painting{ID: "p2", Title: "Old draft", ImageURL: "https://img/d.jpg", AvailableSizes: []string{"s-50x70"}, IsActive: false},
		),
		client: newFakeCollectionRepo(func(c *models.Client) string { return c.ID }),
		users:  newFakeAuthRepo(),
	}
	env.state = NewAppState(Repositories{
		Sizes:         env.sizes,
		FrameTypes:    newFakeCollectionRepo(func(f *models.FrameType) string { return f.ID }, models.FrameType{ID: "oak", Name: "Oak"}),
		Paintings:     env.paints,
		Clients:       env.client,
		BlogPosts:     newFakeCollectionRepo(func(b *models.BlogPost) string { return b.ID }),
		HeroSlides:    newFakeCollectionRepo(func(h *models.HeroSlide) string { return h.ID }),
		Categories:    newFakeCollectionRepo(func(c *models.Category) string { return c.ID }),
		Subcategories: newFakeCollectionRepo(func(s *models.Subcategory) string { return s.ID }),
		Orders:        env.orders,
		Users:         env.users,
	}, env.cache, time.Minute)
	return env
}
