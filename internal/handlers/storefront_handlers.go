package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the public shop: catalog reads, price quotes and checkout.
type StorefrontHandler struct {
	state          *services.AppState
	catalogService services.CatalogService
	orderService   services.OrderService
}

func NewStorefrontHandler(state *services.AppState, cs services.CatalogService, os services.OrderService) *StorefrontHandler {
	return &StorefrontHandler{state: state, catalogService: cs, orderService: os}
}

func (h *StorefrontHandler) GetPaintings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalogService.StorefrontPaintings(c.Query("category"))})
}

func (h *StorefrontHandler) GetPainting(c *gin.Context) {
	p, ok := h.state.Paintings.Get(c.Param("id"))
	if !ok || !p.IsActive {
		respondNotFound(c, "Painting")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *StorefrontHandler) GetSizes(c *gin.Context) {
	sizes := []models.CanvasSize{}
	for _, s := range h.state.Sizes.All() {
		if s.IsActive {
			sizes = append(sizes, s)
		}
	}
	sort.SliceStable(sizes, func(i, j int) bool {
		return sizes[i].Width*sizes[i].Height < sizes[j].Width*sizes[j].Height
	})
	c.JSON(http.StatusOK, gin.H{"data": sizes})
}

func (h *StorefrontHandler) GetFrameTypes(c *gin.Context) {
	frames := []models.FrameType{}
	for _, f := range h.state.FrameTypes.All() {
		if f.IsActive {
			frames = append(frames, f)
		}
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].SortOrder < frames[j].SortOrder })
	c.JSON(http.StatusOK, gin.H{"data": frames})
}

func (h *StorefrontHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":    h.state.Categories.All(),
		"subcategories": h.state.Subcategories.All(),
	})
}

func (h *StorefrontHandler) GetBlogPosts(c *gin.Context) {
	posts := []models.BlogPost{}
	for _, p := range h.state.BlogPosts.All() {
		if p.Published {
			posts = append(posts, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (h *StorefrontHandler) GetHeroSlides(c *gin.Context) {
	slides := []models.HeroSlide{}
	for _, s := range h.state.HeroSlides.All() {
		if s.IsActive {
			slides = append(slides, s)
		}
	}
	sort.SliceStable(slides, func(i, j int) bool { return slides[i].SortOrder < slides[j].SortOrder })
	c.JSON(http.StatusOK, gin.H{"data": slides})
}

// Quote prices one configured painting line for the product configurator.
func (h *StorefrontHandler) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	quote, err := h.catalogService.Quote(req)
	if err != nil {
		respondServiceError(c, err, "Failed to compute price.")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Checkout places an order from the cart. Prices sent by the client are ignored.
func (h *StorefrontHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	if !utils.IsValidEmail(req.Customer.Email) {
		utils.RespondValidationFailed(c, "invalid email format")
		return
	}
	if req.Customer.PersonType == models.PersonJuridica && (utils.IsEmpty(req.Customer.CompanyName) || utils.IsEmpty(req.Customer.TaxID)) {
		utils.RespondValidationFailed(c, "companyName and taxId are required for companies")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to place order.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":          order.ID,
		"orderNumber": order.OrderNumber,
		"total":       order.Total,
		"status":      order.Status,
	})
}

// SearchPhotos proxies the stock-photo search for the admin painting picker.
func (h *StorefrontHandler) SearchPhotos(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.RespondValidationFailed(c, "query is required")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	result, err := h.catalogService.SearchPhotos(c.Request.Context(), query, page, perPage)
	if err != nil {
		respondServiceError(c, err, "Failed to search photos.")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StorefrontHandler) RandomPhotos(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "12"))
	photos, err := h.catalogService.RandomPhotos(c.Request.Context(), count)
	if err != nil {
		respondServiceError(c, err, "Failed to load photos.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": photos})
}

func (h *StorefrontHandler) ImportStockPhoto(c *gin.Context) {
	var req services.ImportPhotoRequest
	if !bindJSON(c, &req) {
		return
	}
	painting, err := h.catalogService.ImportStockPhoto(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to import photo.")
		return
	}
	c.JSON(http.StatusCreated, painting)
}

// RefreshState drops every cached collection and reloads the shop state.
func (h *StorefrontHandler) RefreshState(c *gin.Context) {
	if err := h.state.Refresh(c.Request.Context()); err != nil {
		respondServiceError(c, err, "Failed to refresh data.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Data refreshed"})
}
