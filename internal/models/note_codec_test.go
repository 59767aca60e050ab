package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNotesLegacyText(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	notes := DecodeNotes("Client called to confirm", created)

	require.Len(t, notes, 1)
	n := notes[0]
	assert.Equal(t, "Client called to confirm", n.Text)
	assert.Equal(t, NoteClosed, n.Status)
	assert.True(t, n.IsRead)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, created, n.CreatedAt)
}

func TestDecodeNotesEmpty(t *testing.T) {
	assert.Empty(t, DecodeNotes("", time.Now()))
	assert.Empty(t, DecodeNotes("   ", time.Now()))
	assert.Empty(t, DecodeNotes("[]", time.Now()))
}

func TestDecodeNotesBracketedLegacyText(t *testing.T) {
	notes := DecodeNotes("[urgent] deliver before Friday", time.Now())
	require.Len(t, notes, 1)
	assert.Equal(t, "[urgent] deliver before Friday", notes[0].Text)
	assert.Equal(t, NoteClosed, notes[0].Status)
}

func TestEncodeDecodeNotesThread(t *testing.T) {
	in := []Note{
		{ID: "n1", Text: "check frame", CreatedBy: "Ana", CreatedByRole: "account-manager", Status: NoteOpen, ReadBy: []string{}},
		{ID: "n2", Text: "done", CreatedBy: "Ion", CreatedByRole: "production", Status: NoteClosed, IsRead: true, ReadBy: []string{"Ana"}},
	}

	raw, err := EncodeNotes(in)
	require.NoError(t, err)

	out := DecodeNotes(raw, time.Now())
	require.Len(t, out, 2)
	assert.Equal(t, "n1", out[0].ID)
	assert.Equal(t, NoteOpen, out[0].Status)
	assert.Equal(t, []string{"Ana"}, out[1].ReadBy)
}

func TestEncodeNilNotes(t *testing.T) {
	raw, err := EncodeNotes(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}
