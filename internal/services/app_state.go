package services

import (
	"context"
	"fmt"
	"time"

	"canvas_shop_backend/internal/cache"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"
)

// Cache keys of the loaded collections.
const (
	KeySizes         = "sizes"
	KeyFrameTypes    = "frameTypes"
	KeyPaintings     = "paintings"
	KeyClients       = "clients"
	KeyOrders        = ordersCacheKey
	KeyBlogPosts     = "blogPosts"
	KeyHeroSlides    = "heroSlides"
	KeyUsers         = "users"
	KeyCategories    = "categories"
	KeySubcategories = "subcategories"
)

// Repositories groups the gateways AppState loads from.
type Repositories struct {
	Sizes         repositories.CollectionRepository[models.CanvasSize]
	FrameTypes    repositories.CollectionRepository[models.FrameType]
	Paintings     repositories.CollectionRepository[models.Painting]
	Clients       repositories.CollectionRepository[models.Client]
	BlogPosts     repositories.CollectionRepository[models.BlogPost]
	HeroSlides    repositories.CollectionRepository[models.HeroSlide]
	Categories    repositories.CollectionRepository[models.Category]
	Subcategories repositories.CollectionRepository[models.Subcategory]
	Orders        repositories.OrderRepository
	Users         repositories.AuthRepository
}

// AppState is the in-memory view of the shop shared by all services.
type AppState struct {
	Sizes         *Collection[models.CanvasSize]
	FrameTypes    *Collection[models.FrameType]
	Paintings     *Collection[models.Painting]
	Clients       *Collection[models.Client]
	Orders        *OrderStore
	BlogPosts     *Collection[models.BlogPost]
	HeroSlides    *Collection[models.HeroSlide]
	Users         *Collection[models.AdminUser]
	Categories    *Collection[models.Category]
	Subcategories *Collection[models.Subcategory]

	cache cache.Cache
	tasks backgroundTasks
}

type loadStep struct {
	key  string
	load func(ctx context.Context) error
}

func NewAppState(repos Repositories, c cache.Cache, ttl time.Duration) *AppState {
	s := &AppState{
		Sizes:         NewCollection(KeySizes, repos.Sizes, c, ttl, func(v *models.CanvasSize) *string { return &v.ID }),
		FrameTypes:    NewCollection(KeyFrameTypes, repos.FrameTypes, c, ttl, func(v *models.FrameType) *string { return &v.ID }),
		Paintings:     NewCollection(KeyPaintings, repos.Paintings, c, ttl, func(v *models.Painting) *string { return &v.ID }),
		Clients:       NewCollection(KeyClients, repos.Clients, c, ttl, func(v *models.Client) *string { return &v.ID }),
		Orders:        NewOrderStore(repos.Orders, c, ttl),
		BlogPosts:     NewCollection(KeyBlogPosts, repos.BlogPosts, c, ttl, func(v *models.BlogPost) *string { return &v.ID }),
		HeroSlides:    NewCollection(KeyHeroSlides, repos.HeroSlides, c, ttl, func(v *models.HeroSlide) *string { return &v.ID }),
		Users:         NewCollection[models.AdminUser](KeyUsers, &userGateway{repo: repos.Users}, c, ttl, func(v *models.AdminUser) *string { return &v.ID }),
		Categories:    NewCollection(KeyCategories, repos.Categories, c, ttl, func(v *models.Category) *string { return &v.ID }),
		Subcategories: NewCollection(KeySubcategories, repos.Subcategories, c, ttl, func(v *models.Subcategory) *string { return &v.ID }),
		cache:         c,
	}

	s.Paintings.derive = func(p *models.Painting) {
		p.FromPrice = PaintingFromPrice(p, s.Sizes.All())
	}
	s.Sizes.onChange = s.Paintings.Rederive
	s.Users.derive = func(u *models.AdminUser) { u.PasswordHash = "" }
	return s
}

// steps lists the collections in load order. Sizes precede paintings so that
// painting prices can be derived.
func (s *AppState) steps() []loadStep {
	return []loadStep{
		{KeySizes, s.Sizes.Load},
		{KeyFrameTypes, s.FrameTypes.Load},
		{KeyPaintings, s.Paintings.Load},
		{KeyClients, s.Clients.Load},
		{KeyOrders, s.Orders.Load},
		{KeyBlogPosts, s.BlogPosts.Load},
		{KeyHeroSlides, s.HeroSlides.Load},
		{KeyUsers, s.Users.Load},
		{KeyCategories, s.Categories.Load},
		{KeySubcategories, s.Subcategories.Load},
	}
}

// Init loads every collection in order. The first failing step aborts the load.
func (s *AppState) Init(ctx context.Context) error {
	start := time.Now()
	for _, step := range s.steps() {
		if err := step.load(ctx); err != nil {
			return fmt.Errorf("initializing %s: %w", step.key, err)
		}
	}
	utils.LogInfo("Application state loaded", map[string]interface{}{"duration": time.Since(start).String()})
	return nil
}

// Refresh drops every cached collection and reloads from the gateway.
// Orders are merged with what is already in memory.
func (s *AppState) Refresh(ctx context.Context) error {
	keys := make([]string, 0, 10)
	for _, step := range s.steps() {
		keys = append(keys, step.key)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		utils.LogWarn("Cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
	return s.Init(ctx)
}

// Teardown waits for in-flight notifications and audit writes, then empties the state.
func (s *AppState) Teardown() {
	s.tasks.Wait()
	s.Sizes.clear()
	s.FrameTypes.clear()
	s.Paintings.clear()
	s.Clients.clear()
	s.Orders.clear()
	s.BlogPosts.clear()
	s.HeroSlides.clear()
	s.Users.clear()
	s.Categories.clear()
	s.Subcategories.clear()
}

// userGateway exposes staff accounts through the collection interface.
type userGateway struct {
	repo repositories.AuthRepository
}

func (g *userGateway) GetAll(ctx context.Context) ([]models.AdminUser, error) {
	return g.repo.GetUsers(ctx)
}

func (g *userGateway) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return g.repo.FindUserByID(ctx, id)
}

func (g *userGateway) Create(ctx context.Context, id string, u *models.AdminUser) error {
	u.ID = id
	return g.repo.CreateUser(ctx, u)
}

func (g *userGateway) Update(ctx context.Context, id string, u *models.AdminUser) error {
	u.ID = id
	return g.repo.UpdateUser(ctx, u)
}

func (g *userGateway) Delete(ctx context.Context, id string) error {
	return g.repo.DeleteUser(ctx, id)
}
