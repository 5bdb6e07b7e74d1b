package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// UnmarshalJSON decodes a document, treating a missing, null or non-array playlists or
// schedules member as an empty sequence. Malformed elements inside an array are still errors.
func (d *ConfigDocument) UnmarshalJSON(data []byte) error {
	type plain ConfigDocument
	var raw struct {
		plain
		Playlists json.RawMessage `json:"playlists"`
		Schedules json.RawMessage `json:"schedules"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = ConfigDocument(raw.plain)
	d.Playlists = []Playlist{}
	d.Schedules = []Schedule{}

	if isArray(raw.Playlists) {
		if err := json.Unmarshal(raw.Playlists, &d.Playlists); err != nil {
			return fmt.Errorf("playlists: %w", err)
		}
	}
	if isArray(raw.Schedules) {
		if err := json.Unmarshal(raw.Schedules, &d.Schedules); err != nil {
			return fmt.Errorf("schedules: %w", err)
		}
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ErrNotObject is returned by Decode for content whose top level is not a JSON object.
var ErrNotObject = errors.New("document must be a JSON object")

// Decode parses a serialized document.
// The top level must be a JSON object; null, arrays and scalars are rejected.
func Decode(data []byte) (*ConfigDocument, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var doc ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a document; pretty output uses 2-space indentation like the exported config.json.
func Encode(doc *ConfigDocument, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Clone returns a deep copy, so transforms never alias the caller's slices.
func (d *ConfigDocument) Clone() *ConfigDocument {
	data, err := json.Marshal(d)
	if err != nil {
		panic(fmt.Sprintf("config document is not serializable: %v", err))
	}
	var out ConfigDocument
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("config document does not round-trip: %v", err))
	}
	return &out
}

// SameContent reports whether a and b serialize identically once lastModified is ignored.
func SameContent(a, b *ConfigDocument) bool {
	if a == nil || b == nil {
		return a == b
	}
	ac, bc := *a, *b
	ac.LastModified, bc.LastModified = "", ""
	ad, err := json.Marshal(&ac)
	if err != nil {
		return false
	}
	bd, err := json.Marshal(&bc)
	if err != nil {
		return false
	}
	return bytes.Equal(ad, bd)
}
