package theme

import (
	"fmt"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// Mode is the colour scheme applied to a form session.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode is the scheme of a fresh session.
const DefaultMode = Light

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("theme: unknown mode %q", raw)
	}
}

// Toggle returns the opposite scheme.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ToggleLabel is the caption of the control that switches away from m.
func (m Mode) ToggleLabel() string {
	if m == Dark {
		return "☀️ Light Mode"
	}
	return "🌙 Dark Mode"
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == "" {
		return string(DefaultMode)
	}
	return string(m)
}

// ManifestName names the built-in theme.
const ManifestName = "practice"

// Manifest describes the built-in theme with one variant per Mode.
func Manifest() *gotheme.Manifest {
	return &gotheme.Manifest{
		Name:    ManifestName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"radius":      "12px",
			"font-family": "system-ui, sans-serif",
			"primary":     "#4f46e5",
			"error":       "#dc2626",
		},
		Variants: map[string]gotheme.Variant{
			string(Light): {
				Tokens: map[string]string{
					"background": "#f3f4f6",
					"surface":    "#ffffff",
					"text":       "#111827",
					"muted":      "#6b7280",
					"border":     "#d1d5db",
				},
			},
			string(Dark): {
				Tokens: map[string]string{
					"background": "#0f172a",
					"surface":    "#1e293b",
					"text":       "#f1f5f9",
					"muted":      "#94a3b8",
					"border":     "#334155",
					"primary":    "#818cf8",
				},
			},
		},
	}
}

// Selector resolves theme selections against a fixed set of manifests. It
// satisfies go-theme's ThemeSelector.
type Selector struct {
	manifests      map[string]*gotheme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ gotheme.ThemeSelector = (*Selector)(nil)

// NewSelector builds a selector seeded with the built-in manifest plus any
// extra manifests. Later manifests replace earlier ones with the same name.
func NewSelector(extra ...*gotheme.Manifest) *Selector {
	s := &Selector{
		manifests:      make(map[string]*gotheme.Manifest),
		defaultTheme:   ManifestName,
		defaultVariant: string(DefaultMode),
	}
	s.manifests[ManifestName] = Manifest()
	for _, m := range extra {
		if m == nil || strings.TrimSpace(m.Name) == "" {
			continue
		}
		s.manifests[m.Name] = m
	}
	return s
}

// Select returns the manifest and variant for name/variant, falling back to
// the defaults for empty arguments.
func (s *Selector) Select(name, variant string, _ ...gotheme.QueryOption) (*gotheme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("theme: %q not found", name)
	}
	if _, ok := manifest.Variants[variant]; !ok && len(manifest.Variants) > 0 {
		return nil, fmt.Errorf("theme: %q has no variant %q", name, variant)
	}
	return &gotheme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// ForMode selects the built-in theme's variant for m.
func (s *Selector) ForMode(m Mode) (*gotheme.Selection, error) {
	return s.Select(ManifestName, m.String())
}

// RendererConfig flattens a selection into what renderers consume: merged
// tokens, CSS custom properties and an asset resolver.
func RendererConfig(sel *gotheme.Selection) *gotheme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant := manifest.Variants[sel.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	partials := mergeStrings(manifest.Templates, variant.Templates)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &gotheme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

// CSSVarsStyle renders CSS custom properties as a deterministic inline style.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s: %s;", key, vars[key])
	}
	return b.String()
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
