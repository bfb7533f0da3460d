package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the renderers a transport can answer with. The server
// keeps the HTML page and the JSON state here and picks one per request by
// media type.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register stores renderer under its Name. Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get looks a renderer up by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Names lists the registered renderer names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// ForContentType returns the first renderer, by name, producing mediaType.
// Parameters such as charset are ignored on both sides.
func (r *Registry) ForContentType(mediaType string) (Renderer, error) {
	want := baseMediaType(mediaType)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.namesLocked() {
		renderer := r.renderers[name]
		if baseMediaType(renderer.ContentType()) == want {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("render: no renderer for %q", mediaType)
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baseMediaType(value string) string {
	if idx := strings.IndexByte(value, ';'); idx >= 0 {
		value = value[:idx]
	}
	return strings.ToLower(strings.TrimSpace(value))
}
