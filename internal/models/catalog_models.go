package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FramePrice is the price of a frame type for one canvas size.
// Nil availability flags mean available; records written before the flags existed carry none.
type FramePrice struct {
	Price              decimal.Decimal `json:"price"`
	Discount           decimal.Decimal `json:"discount"`
	AvailableForCanvas *bool           `json:"availableForCanvas,omitempty"`
	AvailableForPrint  *bool           `json:"availableForPrint,omitempty"`
}

// CanvasSize is a catalog dimension with its base price and per-frame prices.
// A frame type missing from FramePrices is not offered for this size.
type CanvasSize struct {
	ID          string                `json:"id"`
	Width       int                   `json:"width" binding:"required,gt=0"`
	Height      int                   `json:"height" binding:"required,gt=0"`
	Price       decimal.Decimal       `json:"price"`
	Discount    decimal.Decimal       `json:"discount"`
	IsActive    bool                  `json:"isActive"`
	FramePrices map[string]FramePrice `json:"framePrices,omitempty"`
}

// Label is the "<width>x<height>" form used by personalized items.
func (s CanvasSize) Label() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

type FrameType struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type Subcategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Slug       string `json:"slug"`
}

// PhotoCredit keeps stock-photo attribution for paintings imported from the photo provider.
type PhotoCredit struct {
	PhotoID          string `json:"photoId"`
	PhotographerName string `json:"photographerName"`
	PhotographerURL  string `json:"photographerUrl"`
}

type Painting struct {
	ID             string       `json:"id"`
	Title          string       `json:"title" binding:"required"`
	Description    string       `json:"description,omitempty"`
	ImageURL       string       `json:"imageUrl" binding:"required"`
	Category       string       `json:"category"`
	Subcategory    string       `json:"subcategory,omitempty"`
	AvailableSizes []string     `json:"availableSizes"`
	PrintTypes     []PrintType  `json:"printTypes,omitempty"`
	IsActive       bool         `json:"isActive"`
	IsBestseller   bool         `json:"isBestseller"`
	Credit         *PhotoCredit `json:"credit,omitempty"`

	// FromPrice is derived from the size table on load; it is not persisted.
	FromPrice *decimal.Decimal `json:"fromPrice,omitempty"`
}

type BlogPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title" binding:"required"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Author      string     `json:"author,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

type HeroSlide struct {
	ID         string `json:"id"`
	Title      string `json:"title" binding:"required"`
	Subtitle   string `json:"subtitle,omitempty"`
	ImageURL   string `json:"imageUrl" binding:"required"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
	SortOrder  int    `json:"sortOrder"`
	IsActive   bool   `json:"isActive"`
}
