package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrInvalidJSON marks documents that failed to parse. Callers surface it
// as an "Invalid JSON" message, distinct from the empty state shown for a
// valid document with no recognizable posts.
var ErrInvalidJSON = errors.New("invalid JSON")

// GenerateSessionID returns a unique identifier for one loaded-document
// session.
func GenerateSessionID() string {
	return uuid.New().String()
}

// ParseDocument decodes a raw export blob into a generic JSON value. The
// result is completely untyped; the scanner works out what is inside.
func ParseDocument(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return doc, nil
}

// ReadDocument reads and parses a TikTok export file.
func ReadDocument(filename string) (any, error) {
	log.Debug().Str("filename", filename).Msg("Reading export file")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("filename", filename).Int("bytes", len(data)).Msg("Export file parsed")
	return doc, nil
}
