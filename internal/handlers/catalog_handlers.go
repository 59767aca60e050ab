package handlers

import (
	"fmt"
	"strings"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/services"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CatalogHandlers groups the admin CRUD handlers of the catalog and content collections.
type CatalogHandlers struct {
	Sizes         *CollectionHandler[models.CanvasSize]
	FrameTypes    *CollectionHandler[models.FrameType]
	Paintings     *CollectionHandler[models.Painting]
	Categories    *CollectionHandler[models.Category]
	Subcategories *CollectionHandler[models.Subcategory]
	BlogPosts     *CollectionHandler[models.BlogPost]
	HeroSlides    *CollectionHandler[models.HeroSlide]
}

func NewCatalogHandlers(state *services.AppState) *CatalogHandlers {
	return &CatalogHandlers{
		Sizes:      NewCollectionHandler("Size", state.Sizes, validateSize),
		FrameTypes: NewCollectionHandler[models.FrameType]("Frame type", state.FrameTypes, nil),
		Paintings: NewCollectionHandler("Painting", state.Paintings, func(p *models.Painting) string {
			return validatePainting(state, p)
		}),
		Categories: NewCollectionHandler("Category", state.Categories, func(cat *models.Category) string {
			if cat.Slug == "" {
				cat.Slug = slugify(cat.Name)
			}
			return ""
		}),
		Subcategories: NewCollectionHandler("Subcategory", state.Subcategories, func(s *models.Subcategory) string {
			if _, ok := state.Categories.Get(s.CategoryID); !ok {
				return "unknown category " + s.CategoryID
			}
			if s.Slug == "" {
				s.Slug = slugify(s.Name)
			}
			return ""
		}),
		BlogPosts: NewCollectionHandler("Blog post", state.BlogPosts, func(b *models.BlogPost) string {
			if b.Slug == "" {
				b.Slug = slugify(b.Title)
			}
			return ""
		}),
		HeroSlides: NewCollectionHandler[models.HeroSlide]("Hero slide", state.HeroSlides, nil),
	}
}

func validateSize(s *models.CanvasSize) string {
	if s.Price.IsNegative() {
		return "price must not be negative"
	}
	if s.Discount.IsNegative() || s.Discount.GreaterThan(hundred) {
		return "discount must be between 0 and 100"
	}
	for id, fp := range s.FramePrices {
		if fp.Price.IsNegative() {
			return fmt.Sprintf("frame %s: price must not be negative", id)
		}
		if fp.Discount.IsNegative() || fp.Discount.GreaterThan(hundred) {
			return fmt.Sprintf("frame %s: discount must be between 0 and 100", id)
		}
	}
	return ""
}

func validatePainting(state *services.AppState, p *models.Painting) string {
	if len(p.AvailableSizes) == 0 {
		return "at least one size is required"
	}
	for _, id := range p.AvailableSizes {
		if _, ok := state.Sizes.Get(id); !ok {
			return "unknown size " + id
		}
	}
	for _, pt := range p.PrintTypes {
		if !models.IsValidPrintType(pt) {
			return "unknown print type " + string(pt)
		}
	}
	p.FromPrice = nil
	return ""
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
