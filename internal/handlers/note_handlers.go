package handlers

import (
	"net/http"
	"strings"

	"canvas_shop_backend/internal/middleware"
	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type addNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *OrderHandler) AddNote(c *gin.Context) {
	var req addNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		utils.RespondValidationFailed(c, "note text must not be empty")
		return
	}

	note, err := h.orderService.AddNote(c.Request.Context(), c.Param("id"), text, middleware.ActorFromContext(c))
	h.respondNote(c, note, err, http.StatusCreated)
}

func (h *OrderHandler) MarkNoteRead(c *gin.Context) {
	note, err := h.orderService.MarkNoteRead(c.Request.Context(), c.Param("id"), c.Param("noteId"), middleware.ActorFromContext(c))
	h.respondNote(c, note, err, http.StatusOK)
}

func (h *OrderHandler) CloseNote(c *gin.Context) {
	note, err := h.orderService.CloseNote(c.Request.Context(), c.Param("id"), c.Param("noteId"), middleware.ActorFromContext(c))
	h.respondNote(c, note, err, http.StatusOK)
}

// GetNoteCounts returns the unread and total note counts shown on the order list badge.
func (h *OrderHandler) GetNoteCounts(c *gin.Context) {
	id := c.Param("id")
	c.JSON(http.StatusOK, gin.H{
		"unread": h.orderService.CountUnread(id),
		"total":  h.orderService.CountTotal(id),
	})
}

func (h *OrderHandler) respondNote(c *gin.Context, note *models.Note, err error, status int) {
	if err != nil {
		respondServiceError(c, err, "Failed to update order notes.")
		return
	}
	if note == nil {
		respondNotFound(c, "Order or note")
		return
	}
	c.JSON(status, note)
}
