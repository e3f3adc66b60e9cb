package httpx

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"curriculum-kit/internal/domain"
	"curriculum-kit/internal/snapshot"
)

// FetchSnapshot downloads a SavedContent document and decodes it.
// The format comes from the URL path extension, then the Content-Type, then JSON.
// Extra headers (auth) are sent on every attempt.
func FetchSnapshot(ctx context.Context, client *http.Client, url string, extra http.Header, cfg RetryConfig) (domain.SavedContent, snapshot.Format, error) {
	header := extra.Clone()
	if header == nil {
		header = http.Header{}
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")
	}

	resp, body, err := get(ctx, client, url, header, cfg)
	if err != nil {
		return domain.SavedContent{}, "", err
	}
	f := detectFormat(resp.Request, resp.Header.Get("Content-Type"))
	sc, err := snapshot.Decode(bytes.NewReader(body), f)
	if err != nil {
		return domain.SavedContent{}, f, fmt.Errorf("httpx: %s: %w", url, err)
	}
	return sc, f, nil
}

func detectFormat(req *http.Request, contentType string) snapshot.Format {
	if req != nil && req.URL != nil {
		if f, err := snapshot.FormatFromPath(path.Base(req.URL.Path)); err == nil {
			return f
		}
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return snapshot.YAML
	case strings.Contains(ct, "brotli"):
		return snapshot.JSONBrotli
	}
	return snapshot.JSON
}
