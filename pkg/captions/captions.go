// Package captions loads optional caption metadata for a gallery.
//
// The metadata document has the form:
//
//	{
//	  "captionLines": 2,
//	  "captions": {
//	    "sunset_beach": {"title": "Sunset at the beach"}
//	  }
//	}
//
// Caption keys are image keys (see gallery.Key). captionLines reserves
// vertical space below a zoomed image for caption text.
//
// Captions are strictly optional: [Load] never fails the caller. Any
// problem (missing file, network error, non-2xx status, malformed JSON)
// yields an empty [Set]; the error is returned alongside for logging only.
package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/observability"
)

// maxDocumentSize caps caption documents read from disk or the network.
const maxDocumentSize = 8 << 20

// Entry is the metadata for one image. Unknown fields are ignored.
type Entry struct {
	Title string `json:"title,omitempty"`
}

// Set is a parsed caption document. The zero value means "no captions".
type Set struct {
	Lines    int              `json:"captionLines"`
	Captions map[string]Entry `json:"captions"`
}

// Empty reports whether the set carries no captions.
func (s Set) Empty() bool { return len(s.Captions) == 0 }

// Title returns the caption title for an image key.
func (s Set) Title(key string) (string, bool) {
	e, ok := s.Captions[key]
	if !ok || e.Title == "" {
		return "", false
	}
	return e.Title, true
}

// Parse decodes a caption document.
func Parse(r io.Reader) (Set, error) {
	var s Set
	if err := json.NewDecoder(io.LimitReader(r, maxDocumentSize)).Decode(&s); err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode captions")
	}
	if s.Lines < 0 {
		s.Lines = 0
	}
	return s, nil
}

// Load reads captions from a file path or an http(s) URL. An empty source
// returns an empty set and no error.
func Load(ctx context.Context, source string, client *http.Client) (Set, error) {
	if source == "" {
		return Set{}, nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch(ctx, source, client)
	}

	f, err := os.Open(source)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open captions %s", source)
	}
	defer f.Close()
	return Parse(f)
}

func fetch(ctx context.Context, rawURL string, client *http.Client) (Set, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return Set{}, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse captions url")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Set{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "build captions request")
	}
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return Set{}, errors.Wrap(errors.ErrCodeNetwork, err, "fetch captions")
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Set{}, errors.Wrap(errors.ErrCodeNetwork, fmt.Errorf("status %d", resp.StatusCode), "fetch captions")
	}
	return Parse(resp.Body)
}
