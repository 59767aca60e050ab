package handlers

import (
	"net/http"

	"canvas_shop_backend/internal/services"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CollectionHandler serves admin CRUD for one catalog collection.
type CollectionHandler[T any] struct {
	label      string
	collection *services.Collection[T]
	// validate runs after binding on create and update; a non-empty result is reported as a validation failure.
	validate func(*T) string
}

func NewCollectionHandler[T any](label string, collection *services.Collection[T], validate func(*T) string) *CollectionHandler[T] {
	return &CollectionHandler[T]{label: label, collection: collection, validate: validate}
}

func (h *CollectionHandler[T]) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.collection.All()})
}

func (h *CollectionHandler[T]) Get(c *gin.Context) {
	item, ok := h.collection.Get(c.Param("id"))
	if !ok {
		respondNotFound(c, h.label)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CollectionHandler[T]) Create(c *gin.Context) {
	item, ok := h.bind(c)
	if !ok {
		return
	}
	created, err := h.collection.Create(c.Request.Context(), *item)
	if err != nil {
		respondServiceError(c, err, "Failed to create "+h.label+".")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *CollectionHandler[T]) Update(c *gin.Context) {
	item, ok := h.bind(c)
	if !ok {
		return
	}
	updated, err := h.collection.Update(c.Request.Context(), c.Param("id"), *item)
	if err != nil {
		respondServiceError(c, err, "Failed to update "+h.label+".")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	if err := h.collection.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete "+h.label+".")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.label + " deleted successfully"})
}

func (h *CollectionHandler[T]) bind(c *gin.Context) (*T, bool) {
	var item T
	if !bindJSON(c, &item) {
		return nil, false
	}
	if h.validate != nil {
		if msg := h.validate(&item); msg != "" {
			utils.RespondValidationFailed(c, msg)
			return nil, false
		}
	}
	return &item, true
}
