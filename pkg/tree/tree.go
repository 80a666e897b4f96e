package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Marshal serializes a family graph to pretty-printed JSON bytes.
func Marshal(d *Data) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a family graph.
// Structurally invalid payloads are the only parse-time failure; dangling
// edge references are tolerated (see package doc).
func Unmarshal(data []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return Data{}, fmt.Errorf("unmarshal tree: %w", err)
	}
	return d, nil
}

// Read decodes a JSON family graph from an io.Reader.
func Read(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// ReadFile reads a JSON file and returns the decoded family graph.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write writes a family graph as indented JSON to an io.Writer.
func Write(d *Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a family graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(d *Data, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// ReadDocument decodes a raw member document (adjacency-list format)
// from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode members: %w", err)
	}
	return doc, nil
}

// ReadDocumentFile reads a raw member document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
