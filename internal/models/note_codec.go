package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LegacyNoteAuthor is the author recorded on notes synthesized from pre-thread free text.
const LegacyNoteAuthor = "system"

// DecodeNotes reads the serialized notes field of an order.
// A value that is not a JSON note list is legacy free text and becomes one closed, read note.
func DecodeNotes(raw string, orderCreatedAt time.Time) []Note {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []Note{}
	}
	if strings.HasPrefix(trimmed, "[") {
		var notes []Note
		if err := json.Unmarshal([]byte(trimmed), &notes); err == nil {
			if notes == nil {
				notes = []Note{}
			}
			return notes
		}
	}

	closedAt := orderCreatedAt
	return []Note{{
		ID:            uuid.NewString(),
		Text:          raw,
		CreatedAt:     orderCreatedAt,
		CreatedBy:     LegacyNoteAuthor,
		CreatedByRole: string(RoleFullAdmin),
		IsRead:        true,
		ReadBy:        []string{},
		Status:        NoteClosed,
		ClosedAt:      &closedAt,
		ClosedBy:      LegacyNoteAuthor,
	}}
}

// EncodeNotes serializes the whole note list into the single text field stored on the order.
func EncodeNotes(notes []Note) (string, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
