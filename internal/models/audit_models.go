package models

import "time"

type AuditAction string

const (
	AuditStatusChanged AuditAction = "order.status_changed"
	AuditNoteAdded     AuditAction = "order.note_added"
	AuditNoteRead      AuditAction = "order.note_read"
	AuditNoteClosed    AuditAction = "order.note_closed"
	AuditOrderCreated  AuditAction = "order.created"
	AuditOrderDeleted  AuditAction = "order.deleted"
	AuditAWBGenerated  AuditAction = "order.awb_generated"
)

// AuditEntry records one staff action on an order.
type AuditEntry struct {
	ID        string                 `json:"id" bson:"_id,omitempty"`
	Action    AuditAction            `json:"action" bson:"action"`
	OrderID   string                 `json:"orderId" bson:"order_id"`
	Actor     string                 `json:"actor" bson:"actor"`
	ActorRole string                 `json:"actorRole" bson:"actor_role"`
	Data      map[string]interface{} `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"created_at"`
}
