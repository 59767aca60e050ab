package services

import (
	"testing"

	"canvas_shop_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullItems(n int) models.LineItems {
	items := make(models.LineItems, n)
	for i := range items {
		items[i] = &models.PaintingItem{PaintingID: "p", Quantity: 1, Price: d("10")}
	}
	return items
}

func makeNotes(n int) []models.Note {
	out := make([]models.Note, n)
	for i := range out {
		out[i] = models.Note{ID: string(rune('a' + i)), Status: models.NoteOpen}
	}
	return out
}

func TestMergeKeepsDetailedOrder(t *testing.T) {
	existing := []*models.Order{{ID: "O1", Items: fullItems(5), ItemsCount: 5, Notes: makeNotes(2)}}
	fresh := []*models.Order{{ID: "O1", ItemsCount: 5, Notes: makeNotes(1)}}

	merged := MergeOrders(existing, fresh)

	require.Len(t, merged, 1)
	assert.Len(t, merged[0].Items, 5)
	assert.Len(t, merged[0].Notes, 2)
}

func TestMergeKeepsOrderWithMoreNotes(t *testing.T) {
	existing := []*models.Order{{ID: "O1", ItemsCount: 2, Notes: makeNotes(3), Status: models.OrderStatusNew}}
	fresh := []*models.Order{{ID: "O1", ItemsCount: 2, Notes: makeNotes(2), Status: models.OrderStatusQueue}}

	merged := MergeOrders(existing, fresh)

	assert.Equal(t, models.OrderStatusNew, merged[0].Status)
}

func TestMergeTakesFreshOtherwise(t *testing.T) {
	existing := []*models.Order{
		{ID: "O1", ItemsCount: 2, Notes: makeNotes(1), Status: models.OrderStatusNew},
		{ID: "gone", ItemsCount: 1},
	}
	fresh := []*models.Order{
		{ID: "O2", ItemsCount: 1},
		{ID: "O1", ItemsCount: 2, Notes: makeNotes(1), Status: models.OrderStatusQueue},
	}

	merged := MergeOrders(existing, fresh)

	require.Len(t, merged, 2)
	assert.Equal(t, "O2", merged[0].ID)
	assert.Equal(t, models.OrderStatusQueue, merged[1].Status)
}

func TestMergeFreshDetailReplacesPlaceholder(t *testing.T) {
	existing := []*models.Order{{ID: "O1", ItemsCount: 3}}
	fresh := []*models.Order{{ID: "O1", Items: fullItems(3), ItemsCount: 3}}

	merged := MergeOrders(existing, fresh)

	assert.Len(t, merged[0].Items, 3)
}
