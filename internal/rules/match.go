package rules

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether urlPath is selected by a platform pattern. A "*"
// splat spans any number of segments, a ":name" placeholder exactly one.
func Match(pattern, urlPath string) bool {
	ok, err := doublestar.Match(toGlob(pattern), urlPath)
	return err == nil && ok
}

// MatchingBlocks returns the blocks applying to urlPath in file order.
func MatchingBlocks(blocks []HeaderBlock, urlPath string) []HeaderBlock {
	var out []HeaderBlock
	for _, b := range blocks {
		if Match(b.Pattern, urlPath) {
			out = append(out, b)
		}
	}
	return out
}

var globEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`, "{", `\{`, "}", `\}`,
)

// toGlob rewrites a platform pattern as a doublestar glob:
//
//	/app/:version/*      -> /app/*/**
//	/app/:version/*.css  -> /app/*/**/*.css
func toGlob(pattern string) string {
	segs := strings.Split(pattern, "/")
	for i, s := range segs {
		switch {
		case strings.HasPrefix(s, ":"):
			segs[i] = "*"
		case s == "*":
			segs[i] = "**"
		case strings.HasPrefix(s, "*"):
			segs[i] = "**/" + s
		default:
			segs[i] = globEscaper.Replace(s)
		}
	}
	return strings.Join(segs, "/")
}
