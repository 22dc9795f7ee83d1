package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Redirect struct {
	From   string
	To     string
	Status int
}

func (r Redirect) String() string {
	return r.From + " " + r.To + " " + strconv.Itoa(r.Status)
}

// Dynamic reports whether the source uses a splat or a placeholder.
func (r Redirect) Dynamic() bool {
	if strings.Contains(r.From, "*") {
		return true
	}
	for _, seg := range strings.Split(r.From, "/") {
		if strings.HasPrefix(seg, ":") {
			return true
		}
	}
	return false
}

// Rewrite serves /<From>/* from /<To>/ with a 200.
type Rewrite struct {
	From string
	To   string
}

type RedirectParams struct {
	Types    []string
	Version  string
	Favicon  Redirect
	Rewrites []Rewrite
}

// Redirects lists the favicon rule, the short-path redirects of each type to
// its versioned root, then the wildcard rewrites. Dynamic rules go last.
func Redirects(p RedirectParams) []Redirect {
	var out []Redirect
	if p.Favicon.From != "" {
		out = append(out, p.Favicon)
	}
	for _, t := range p.Types {
		target := "/" + t + "/" + p.Version + "/"
		out = append(out,
			Redirect{From: "/" + t, To: target, Status: 307},
			Redirect{From: "/" + t + "/", To: target, Status: 307},
		)
	}
	for _, rw := range p.Rewrites {
		out = append(out, Redirect{
			From:   "/" + rw.From + "/*",
			To:     "/" + rw.To + "/:splat",
			Status: 200,
		})
	}
	return out
}

var ErrRuleOrder = errors.New("dynamic redirect precedes a literal one")

// ValidateRedirectOrder enforces the platform rule that splat and placeholder
// rules come after every literal rule.
func ValidateRedirectOrder(rules []Redirect) error {
	firstDynamic := -1
	for i, r := range rules {
		if r.Dynamic() {
			if firstDynamic < 0 {
				firstDynamic = i
			}
			continue
		}
		if firstDynamic >= 0 {
			return fmt.Errorf("%w: %q (line %d) after %q (line %d)",
				ErrRuleOrder, r.String(), i+1, rules[firstDynamic].String(), firstDynamic+1)
		}
	}
	return nil
}

// RenderRedirects joins the rules one per line, without a trailing newline.
func RenderRedirects(rules []Redirect) string {
	lines := make([]string, 0, len(rules))
	for _, r := range rules {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
