package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"canvas_shop_backend/internal/clients"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"
)

var ErrPhotosUnavailable = errors.New("stock photos unavailable")

// PhotoProvider is the stock-photo API.
type PhotoProvider interface {
	Search(ctx context.Context, query string, page, perPage int) (*clients.PhotoSearchResult, error)
	Random(ctx context.Context, count int) ([]clients.Photo, error)
	Get(ctx context.Context, id string) (*clients.Photo, error)
	TriggerDownload(ctx context.Context, downloadLocation string) (string, error)
}

type QuoteRequest struct {
	SizeID      string           `form:"sizeId" json:"sizeId" binding:"required"`
	FrameTypeID string           `form:"frameTypeId" json:"frameTypeId"`
	PrintType   models.PrintType `form:"printType" json:"printType"`
	Quantity    int              `form:"quantity" json:"quantity"`
}

// ImportPhotoRequest turns a stock photo into a catalog painting.
type ImportPhotoRequest struct {
	PhotoID        string   `json:"photoId" binding:"required"`
	Title          string   `json:"title"`
	Category       string   `json:"category" binding:"required"`
	Subcategory    string   `json:"subcategory"`
	AvailableSizes []string `json:"availableSizes" binding:"required,min=1"`
}

// CatalogService serves the storefront views of the catalog and the stock-photo import.
type CatalogService interface {
	Quote(req QuoteRequest) (*PriceQuote, error)
	StorefrontPaintings(category string) []models.Painting
	SearchPhotos(ctx context.Context, query string, page, perPage int) (*clients.PhotoSearchResult, error)
	RandomPhotos(ctx context.Context, count int) ([]clients.Photo, error)
	ImportStockPhoto(ctx context.Context, req ImportPhotoRequest) (*models.Painting, error)
}

type catalogService struct {
	state  *AppState
	photos PhotoProvider
}

func NewCatalogService(state *AppState, photos PhotoProvider) CatalogService {
	return &catalogService{state: state, photos: photos}
}

func (s *catalogService) Quote(req QuoteRequest) (*PriceQuote, error) {
	size, ok := s.state.Sizes.Get(req.SizeID)
	if !ok {
		return nil, fmt.Errorf("%w: size %s", ErrNotFound, req.SizeID)
	}
	if req.PrintType != "" && !models.IsValidPrintType(req.PrintType) {
		return nil, fmt.Errorf("%w: unknown print type %q", ErrValidation, req.PrintType)
	}
	q := QuoteFor(size, req.FrameTypeID, req.PrintType, req.Quantity)
	return &q, nil
}

// StorefrontPaintings lists active paintings, bestsellers first, optionally within one category.
func (s *catalogService) StorefrontPaintings(category string) []models.Painting {
	out := []models.Painting{}
	for _, p := range s.state.Paintings.All() {
		if !p.IsActive {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsBestseller && !out[j].IsBestseller
	})
	return out
}

func (s *catalogService) SearchPhotos(ctx context.Context, query string, page, perPage int) (*clients.PhotoSearchResult, error) {
	if s.photos == nil {
		return nil, ErrPhotosUnavailable
	}
	return s.photos.Search(ctx, query, page, perPage)
}

func (s *catalogService) RandomPhotos(ctx context.Context, count int) ([]clients.Photo, error) {
	if s.photos == nil {
		return nil, ErrPhotosUnavailable
	}
	return s.photos.Random(ctx, count)
}

// ImportStockPhoto registers the download with the provider before creating the painting,
// as the provider's attribution terms require.
func (s *catalogService) ImportStockPhoto(ctx context.Context, req ImportPhotoRequest) (*models.Painting, error) {
	if s.photos == nil {
		return nil, ErrPhotosUnavailable
	}
	for _, id := range req.AvailableSizes {
		if _, ok := s.state.Sizes.Get(id); !ok {
			return nil, fmt.Errorf("%w: unknown size %s", ErrValidation, id)
		}
	}

	photo, err := s.photos.Get(ctx, req.PhotoID)
	if err != nil {
		return nil, fmt.Errorf("fetching photo %s: %w", req.PhotoID, err)
	}
	assetURL, err := s.photos.TriggerDownload(ctx, photo.Links.DownloadLocation)
	if err != nil {
		return nil, fmt.Errorf("registering download of photo %s: %w", req.PhotoID, err)
	}
	if assetURL == "" {
		assetURL = photo.URLs.Full
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = firstNonEmpty(photo.Description, photo.AltDescription, "Untitled")
	}
	painting, err := s.state.Paintings.Create(ctx, models.Painting{
		Title:          title,
		Description:    photo.AltDescription,
		ImageURL:       assetURL,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		AvailableSizes: req.AvailableSizes,
		PrintTypes:     []models.PrintType{models.PrintCanvas, models.PrintHartie},
		IsActive:       false,
		Credit: &models.PhotoCredit{
			PhotoID:          photo.ID,
			PhotographerName: photo.User.Name,
			PhotographerURL:  photo.User.Links.HTML,
		},
	})
	if err != nil {
		return nil, err
	}
	utils.LogInfo("Stock photo imported", map[string]interface{}{"photo_id": photo.ID, "painting_id": painting.ID})
	return &painting, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
