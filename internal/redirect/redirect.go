// Package redirect implements the transparent redirect callback registry: a
// pending sale is registered under an opaque token and run later when the
// token comes back.
package redirect

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"gateway-sim/internal/domain"
	"gateway-sim/internal/metrics"
)

// QueryStringKey is the request environment key that carries the token.
const QueryStringKey = "QUERY_STRING"

// Callback produces the result of a redirected operation.
type Callback func() (domain.Result, error)

// Registry maps redirect tokens to callbacks.
type Registry struct {
	callbacks map[string]Callback
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{callbacks: make(map[string]Callback)}
}

// Register stores cb and returns the token that invokes it.
func (r *Registry) Register(cb Callback) string {
	token := base64.StdEncoding.EncodeToString([]byte(uuid.NewString()))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[token] = cb
	return token
}

// RegisterRequest registers cb and writes its token into the request's query
// string. The request then refuses to have its query string overwritten.
func (r *Registry) RegisterRequest(req *Request, cb Callback) (string, error) {
	token := r.Register(cb)
	if err := req.Set(QueryStringKey, token); err != nil {
		return "", err
	}
	req.armed = true
	return token, nil
}

// Invoke runs the callback registered under token.
func (r *Registry) Invoke(token string) (domain.Result, error) {
	r.mu.RLock()
	cb, ok := r.callbacks[token]
	r.mu.RUnlock()
	if !ok {
		metrics.RedirectsTotal.WithLabelValues(metrics.ResultFault).Inc()
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRedirectToken, token)
	}
	metrics.RedirectsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return cb()
}

// Len returns the number of registered callbacks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.callbacks)
}

// Reset drops every registered callback.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = make(map[string]Callback)
}

// QueryStringConflictError is returned when something tries to replace a
// query string set up by the registry.
type QueryStringConflictError struct {
	Existing string
	Incoming string
}

func (e *QueryStringConflictError) Error() string {
	return fmt.Sprintf("redirect registry set up query string %q, but it was about to get overwritten with %q",
		e.Existing, e.Incoming)
}

// Request is the environment of an incoming request, as seen by the
// transparent redirect flow.
type Request struct {
	env   map[string]string
	armed bool
}

// NewRequest creates a request with an empty environment.
func NewRequest() *Request {
	return &Request{env: make(map[string]string)}
}

// Get returns the value stored under key.
func (r *Request) Get(key string) string {
	return r.env[key]
}

// Set stores value under key. Once the registry owns the query string, a
// non-blank overwrite fails and a blank one is ignored.
func (r *Request) Set(key, value string) error {
	if r.armed && key == QueryStringKey {
		if strings.TrimSpace(value) != "" {
			return &QueryStringConflictError{Existing: r.env[QueryStringKey], Incoming: value}
		}
		return nil
	}
	r.env[key] = value
	return nil
}

// TransactionData encodes request attributes as JSON.
func TransactionData(attrs map[string]any) (string, error) {
	data, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("encode transaction data: %w", err)
	}
	return string(data), nil
}
