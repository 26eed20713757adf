package common

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	id := GenerateSessionID()
	if id == "" {
		t.Error("Expected non-empty session ID, got empty string")
	}

	matched, err := regexp.MatchString(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
	if err != nil {
		t.Fatalf("Error in regex matching: %v", err)
	}
	if !matched {
		t.Errorf("Session ID %s is not a UUID", id)
	}

	if id == GenerateSessionID() {
		t.Error("Expected distinct session IDs for successive calls")
	}
}

func TestParseDocumentInvalidJSON(t *testing.T) {
	_, err := ParseDocument([]byte(`{"truncated":`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
}

func TestParseDocumentValidValues(t *testing.T) {
	for _, raw := range []string{`{}`, `[]`, `42`, `"scalar"`, `null`} {
		_, err := ParseDocument([]byte(raw))
		assert.NoError(t, err, "document %s", raw)
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"itemList": []}`), 0o644))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	obj, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "itemList")
}

func TestReadDocumentMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	// A read failure is not an invalid-JSON failure.
	assert.False(t, errors.Is(err, ErrInvalidJSON))
}

func TestReadDocumentInvalidJSONFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json at all`), 0o644))

	_, err := ReadDocument(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
}
