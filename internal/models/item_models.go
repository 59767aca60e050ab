package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypePersonalized ItemType = "personalized"
	ItemTypePainting     ItemType = "painting"
)

type PrintType string

const (
	PrintCanvas PrintType = "Print Canvas"
	PrintHartie PrintType = "Print Hartie"
)

// IsValidPrintType reports whether p is one of the print media on offer.
func IsValidPrintType(p PrintType) bool {
	return p == PrintCanvas || p == PrintHartie
}

// CanvasItem is an order line. It is either a *PersonalizedItem or a *PaintingItem;
// consumers switch on the concrete type.
type CanvasItem interface {
	Type() ItemType
	isCanvasItem()
}

// ImageVariants are the stored resolutions of one uploaded image.
type ImageVariants struct {
	Original  string `json:"original"`
	Medium    string `json:"medium"`
	Thumbnail string `json:"thumbnail"`
}

// PersonalizedItem is a canvas printed from a customer's own upload.
type PersonalizedItem struct {
	ID            string          `json:"id"`
	OriginalImage ImageVariants   `json:"originalImage"`
	CroppedImage  ImageVariants   `json:"croppedImage"`
	Size          string          `json:"size"`
	Orientation   string          `json:"orientation"`
	Price         decimal.Decimal `json:"price"`
}

func (*PersonalizedItem) Type() ItemType { return ItemTypePersonalized }
func (*PersonalizedItem) isCanvasItem()  {}

func (p *PersonalizedItem) MarshalJSON() ([]byte, error) {
	type alias PersonalizedItem
	return json.Marshal(struct {
		Type ItemType `json:"type"`
		*alias
	}{ItemTypePersonalized, (*alias)(p)})
}

// PaintingItem is a catalog painting in a chosen size, medium and optional frame.
type PaintingItem struct {
	PaintingID    string          `json:"paintingId"`
	PaintingTitle string          `json:"paintingTitle"`
	PaintingImage string          `json:"paintingImage"`
	SizeID        string          `json:"sizeId"`
	Quantity      int             `json:"quantity"`
	PrintType     PrintType       `json:"printType,omitempty"`
	FrameTypeID   string          `json:"frameTypeId,omitempty"`
	Price         decimal.Decimal `json:"price"`
}

func (*PaintingItem) Type() ItemType { return ItemTypePainting }
func (*PaintingItem) isCanvasItem()  {}

func (p *PaintingItem) MarshalJSON() ([]byte, error) {
	type alias PaintingItem
	return json.Marshal(struct {
		Type ItemType `json:"type"`
		*alias
	}{ItemTypePainting, (*alias)(p)})
}

// LineItems is the ordered list of an order's items, encoded with a "type" discriminator.
type LineItems []CanvasItem

func (l *LineItems) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make(LineItems, 0, len(raw))
	for i, r := range raw {
		var head struct {
			Type ItemType `json:"type"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		switch head.Type {
		case ItemTypePersonalized:
			var it PersonalizedItem
			if err := json.Unmarshal(r, &it); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, &it)
		case ItemTypePainting:
			var it PaintingItem
			if err := json.Unmarshal(r, &it); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, &it)
		default:
			return fmt.Errorf("item %d: unknown item type %q", i, head.Type)
		}
	}
	*l = items
	return nil
}
