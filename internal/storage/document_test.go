package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoskinen/inviteboard/internal/model"
)

func TestEncodeDocumentEmpty(t *testing.T) {
	data, err := EncodeDocument(nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"entries": []}`, string(data))
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestEncodeDocumentRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*model.Entry{
		{UserID: "a", DisplayName: "anna", Invites: 10, CreatedAt: now, UpdatedAt: now},
		{UserID: "b", DisplayName: "bob", Invites: 5, CreatedAt: now, UpdatedAt: now},
	}

	data, err := EncodeDocument(entries)
	require.NoError(t, err)

	doc, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, entries, doc.Entries)
}

func TestEncodeDocumentDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []*model.Entry{
		{UserID: "a", DisplayName: "anna", Invites: 10, CreatedAt: now, UpdatedAt: now},
	}

	first, err := EncodeDocument(entries)
	require.NoError(t, err)
	second, err := EncodeDocument(entries)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecodeDocumentRejectsGarbage(t *testing.T) {
	_, err := DecodeDocument([]byte("{not json"))
	assert.Error(t, err)
}
