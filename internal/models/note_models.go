package models

import "time"

type NoteStatus string

const (
	NoteOpen   NoteStatus = "open"
	NoteClosed NoteStatus = "closed"
)

// Note is an internal staff comment on an order.
// A closed note is never reopened.
type Note struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
	CreatedByRole string     `json:"createdByRole"`
	IsRead        bool       `json:"isRead"`
	ReadBy        []string   `json:"readBy"`
	Status        NoteStatus `json:"status"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
	ClosedBy      string     `json:"closedBy,omitempty"`
}

func (n Note) clone() Note {
	c := n
	if n.ReadBy != nil {
		c.ReadBy = append([]string(nil), n.ReadBy...)
	}
	if n.ClosedAt != nil {
		t := *n.ClosedAt
		c.ClosedAt = &t
	}
	return c
}
