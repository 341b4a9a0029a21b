package catalogue

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"plscrape/lib/fetch"
)

// ErrServiceNotConfigured is returned when a library service has no entry
// in the service -> backend map. It is fatal at the CLI: without a backend
// there is nothing to search.
var ErrServiceNotConfigured = errors.New("library service is not in the backend map")

// Constructor builds a backend around the shared fetch client.
type Constructor func(*fetch.Client) Backend

// Registry maps backend ids (recognizable hostname strings like
// "prism.librarymanagementcloud.co.uk") to lazily constructed backend
// instances. Registration order doubles as the discovery preference order.
type Registry struct {
	fetch *fetch.Client
	order []string
	ctors map[string]Constructor

	mu    sync.Mutex
	cache map[string]Backend
}

func NewRegistry(fetchClient *fetch.Client) *Registry {
	return &Registry{
		fetch: fetchClient,
		ctors: map[string]Constructor{},
		cache: map[string]Backend{},
	}
}

func (r *Registry) Register(id string, ctor Constructor) {
	id = strings.ToLower(id)
	if _, exists := r.ctors[id]; !exists {
		r.order = append(r.order, id)
	}
	r.ctors[id] = ctor
}

// IDs returns the registered backend ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Backend returns the instance for a backend id, constructing it on first
// use. Safe to call from parallel searches.
func (r *Registry) Backend(id string) (Backend, bool) {
	id = strings.ToLower(id)
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.cache[id]
	if !ok {
		b = ctor(r.fetch)
		r.cache[id] = b
	}
	return b, true
}

// Resolve looks a library service up in the service -> backend map and
// returns the backend serving it. The map is passed in explicitly; the
// registry itself holds no service state.
func (r *Registry) Resolve(services map[string]string, service string) (Backend, error) {
	id, ok := services[strings.ToLower(service)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrServiceNotConfigured, service)
	}
	b, ok := r.Backend(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q maps to unknown backend %q", ErrServiceNotConfigured, service, id)
	}
	return b, nil
}
