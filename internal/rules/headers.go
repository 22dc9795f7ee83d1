// Package rules builds the hosting platform's plain-text rule files:
// _headers (path pattern blocks with indented headers) and _redirects (one
// "source destination status" rule per line).
//
// Every generator is a pure function of its parameters. The caller supplies
// the release version and the clock reading, so a release is described by
// configuration rather than a hand-edited copy of the rule text.
package rules

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Header struct {
	Name  string
	Value string
}

// HeaderBlock attaches Headers to every response whose path matches Pattern.
type HeaderBlock struct {
	Pattern string
	Headers []Header
}

type HeaderParams struct {
	Types             []string
	Version           string
	CanonicalBase     string
	Now               time.Time
	MaxAge            time.Duration
	Encoding          string
	EncodedExtensions []string
	DirectoryIndex    bool
}

// Headers returns the universal block followed by the blocks of each type.
func Headers(p HeaderParams) []HeaderBlock {
	blocks := []HeaderBlock{{
		Pattern: "/*",
		Headers: []Header{{"Service-Worker-Allowed", "/"}},
	}}

	canonical := fmt.Sprintf("<%s/app/%s/>; rel=\"canonical\"", strings.TrimRight(p.CanonicalBase, "/"), p.Version)
	encoding := []Header{{"Content-Encoding", p.Encoding}}

	for _, t := range p.Types {
		blocks = append(blocks,
			HeaderBlock{
				Pattern: "/" + t + "/*",
				Headers: []Header{
					{"Cross-Origin-Embedder-Policy", "require-corp"},
					{"Cross-Origin-Opener-Policy", "same-origin"},
					{"Cross-Origin-Resource-Policy", "cross-origin"},
					{"Link", canonical},
				},
			},
			HeaderBlock{
				Pattern: "/" + t + "/:version/*",
				Headers: expiry(p.Now, p.MaxAge),
			},
		)
		for _, ext := range p.EncodedExtensions {
			blocks = append(blocks, HeaderBlock{
				Pattern: "/" + t + "/:version/*." + strings.TrimPrefix(ext, "."),
				Headers: encoding,
			})
		}
		if p.DirectoryIndex {
			blocks = append(blocks, HeaderBlock{
				Pattern: "/" + t + "/:version/",
				Headers: encoding,
			})
		}
	}
	return blocks
}

// expiry marks versioned assets immutable. no-transform keeps the CDN from
// re-encoding the brotli payload.
func expiry(now time.Time, maxAge time.Duration) []Header {
	secs := int64(maxAge / time.Second)
	now = now.UTC()
	return []Header{
		{"Cache-Control", fmt.Sprintf("public, max-age=%d, s-maxage=%d, immutable, no-transform", secs, secs)},
		{"Last-Modified", now.Format(http.TimeFormat)},
		{"Expires", now.AddDate(1, 0, 0).Format(http.TimeFormat)},
	}
}

// RenderHeaders formats blocks in the _headers syntax: the pattern on its own
// line, one tab-indented header per line, a blank line after every block.
func RenderHeaders(blocks []HeaderBlock) string {
	var b strings.Builder
	for _, blk := range blocks {
		b.WriteString(blk.Pattern)
		b.WriteByte('\n')
		for _, h := range blk.Headers {
			fmt.Fprintf(&b, "\t%s: %s\n", h.Name, h.Value)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
