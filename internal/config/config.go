package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Root         string          `yaml:"root"`
	Output       string          `yaml:"output"`
	Release      string          `yaml:"release"`
	Types        []string        `yaml:"types"`
	Suffix       string          `yaml:"suffix"`
	FlattenIndex bool            `yaml:"flattenIndex"`
	Verify       bool            `yaml:"verify"`
	Headers      HeadersConfig   `yaml:"headers"`
	Redirects    RedirectsConfig `yaml:"redirects"`
	Limits       LimitsConfig    `yaml:"limits"`
	Watch        WatchConfig     `yaml:"watch"`
	Logging      LoggingConfig   `yaml:"logging"`
}

type HeadersConfig struct {
	CanonicalBase     string        `yaml:"canonicalBase"`
	MaxAge            time.Duration `yaml:"maxAge"`
	Encoding          string        `yaml:"encoding"`
	EncodedExtensions []string      `yaml:"encodedExtensions"`
	DirectoryIndex    bool          `yaml:"directoryIndex"` // adds /<type>/:version/ per type
}

type RedirectsConfig struct {
	Favicon  RuleConfig      `yaml:"favicon"`
	Rewrites []RewriteConfig `yaml:"rewrites"`
}

type RuleConfig struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Status int    `yaml:"status"`
}

type RewriteConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LimitsConfig holds the hosting platform ceilings. Zero disables a check.
type LimitsConfig struct {
	Files     int `yaml:"files"`
	Redirects int `yaml:"redirects"`
	Headers   int `yaml:"headers"`
}

type WatchConfig struct {
	Mode           string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	Trigger        string        `yaml:"trigger"`        // file under root touched by the build
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 2s
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "error"
	Format string `yaml:"format"` // "json", "text"
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Root:    ".",
		Output:  ".",
		Release: "1.6.14-4",
		Types:   []string{"app", "pwa"},
		Suffix:  ".br",
		Headers: HeadersConfig{
			CanonicalBase:     "https://wide.video",
			MaxAge:            365 * 24 * time.Hour,
			Encoding:          "br",
			EncodedExtensions: []string{"css", "html", "js"},
			// Off keeps five blocks per type, but then /<type>/<release>/
			// serves the brotli index.html without Content-Encoding: br.
			// Turn it on when the versioned root is requested directly.
			DirectoryIndex: false,
		},
		Redirects: RedirectsConfig{
			Favicon:  RuleConfig{From: "/favicon.ico", To: "/image/favicon.ico", Status: 200},
			Rewrites: []RewriteConfig{{From: "pwa", To: "app"}},
		},
		Limits: LimitsConfig{
			Files:     20000,
			Redirects: 2000,
			Headers:   100,
		},
		Watch: WatchConfig{
			Mode:           "auto",
			Trigger:        ".build-stamp",
			PollInterval:   2 * time.Second,
			DebounceWindow: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Release) == "" {
		errs = append(errs, errors.New("release must be set"))
	}
	if strings.Contains(c.Release, "/") {
		errs = append(errs, fmt.Errorf("release %q must not contain '/'", c.Release))
	}
	if len(c.Types) == 0 {
		errs = append(errs, errors.New("at least one asset type is required"))
	}
	for _, t := range c.Types {
		if t == "" || strings.ContainsAny(t, "/*:") {
			errs = append(errs, fmt.Errorf("invalid asset type %q", t))
		}
	}
	if c.Suffix == "" || !strings.HasPrefix(c.Suffix, ".") {
		errs = append(errs, fmt.Errorf("suffix %q must start with '.'", c.Suffix))
	}
	switch c.Watch.Mode {
	case "", "auto", "poll", "fsnotify":
	default:
		errs = append(errs, fmt.Errorf("unknown watch mode %q", c.Watch.Mode))
	}
	return errors.Join(errs...)
}
