package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mkoskinen/inviteboard/internal/model"
)

// EncodeDocument renders the canonical persisted form of the entry
// collection: one indented JSON document with stable key order and a
// trailing newline, so version-control diffs stay minimal per update.
func EncodeDocument(entries []*model.Entry) ([]byte, error) {
	doc := model.Document{Entries: entries}
	if doc.Entries == nil {
		doc.Entries = []*model.Entry{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding leaderboard document: %w", err)
	}

	return append(data, '\n'), nil
}

// DecodeDocument parses a persisted leaderboard document.
func DecodeDocument(data []byte) (*model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding leaderboard document: %w", err)
	}
	return &doc, nil
}
