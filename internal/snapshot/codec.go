package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"gopkg.in/yaml.v3"

	"curriculum-kit/internal/domain"
)

type Format string

const (
	JSON       Format = "json"
	JSONBrotli Format = "json.br"
	YAML       Format = "yaml"
)

var ErrUnknownFormat = errors.New("snapshot: unknown format")

// FormatFromPath picks the format from the file extension
// (.json, .json.br, .yaml/.yml).
func FormatFromPath(path string) (Format, error) {
	p := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(p, ".json.br"):
		return JSONBrotli, nil
	case strings.HasSuffix(p, ".json"):
		return JSON, nil
	case strings.HasSuffix(p, ".yaml"), strings.HasSuffix(p, ".yml"):
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case JSONBrotli, "br", "brotli":
		return JSONBrotli, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file suffix written for f, including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func Encode(w io.Writer, sc domain.SavedContent, f Format) error {
	return encodeInto(w, f, sc)
}

func encodeInto(w io.Writer, f Format, v any) error {
	switch f {
	case JSON:
		return encodeJSON(w, v)
	case JSONBrotli:
		bw := brotli.NewWriterLevel(w, brotli.DefaultCompression)
		if err := encodeJSON(bw, v); err != nil {
			_ = bw.Close()
			return err
		}
		if err := bw.Close(); err != nil {
			return fmt.Errorf("snapshot: brotli close: %w", err)
		}
		return nil
	case YAML:
		return encodeYAML(w, v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// encodeYAML goes through the JSON form so nil lists are written as null, not [],
// and decode back to nil like they do in JSON.
func encodeYAML(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	return nil
}

// blockStyle drops the flow and quoting styles inherited from JSON.
// The encoder still quotes strings that would otherwise resolve to another type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func Decode(r io.Reader, f Format) (domain.SavedContent, error) {
	var sc domain.SavedContent
	if err := decodeInto(r, f, &sc); err != nil {
		return domain.SavedContent{}, err
	}
	return sc, nil
}

func decodeInto(r io.Reader, f Format, v any) error {
	switch f {
	case JSON:
		return decodeJSON(r, v)
	case JSONBrotli:
		return decodeJSON(brotli.NewReader(r), v)
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("snapshot: decode yaml: empty document")
			}
			return fmt.Errorf("snapshot: decode yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

func encodeJSON(w io.Writer, v any) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("snapshot: encode json: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("snapshot: write json: %w", err)
	}
	return nil
}

// decodeJSON rejects unknown fields and anything after the top-level object.
func decodeJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("snapshot: decode json: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("snapshot: decode json: trailing content")
	}
	return nil
}
