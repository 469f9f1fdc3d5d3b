package typeinfo

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Serialize renders a document as indented JSON without HTML escaping. The
// same document always produces the same bytes.
func Serialize(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document cannot be nil")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// HashContent returns the hex SHA-256 of data.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashContent(data), nil
}

// WriteToFile serializes doc to outputPath, creating parent directories. The
// file is left untouched when it already holds the same bytes; written
// reports whether it was replaced. The hash of the serialized document is
// returned whenever serialization succeeds.
func WriteToFile(doc *Document, outputPath string) (hash string, written bool, err error) {
	if outputPath == "" {
		return "", false, fmt.Errorf("output path cannot be empty")
	}

	data, err := Serialize(doc)
	if err != nil {
		return "", false, err
	}
	hash = HashContent(data)

	if existing, err := HashFile(outputPath); err == nil && existing == hash {
		return hash, false, nil
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return hash, false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return hash, false, fmt.Errorf("failed to write document to %s: %w", outputPath, err)
	}
	return hash, true, nil
}
