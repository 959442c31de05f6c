package mocks

import (
	"context"
	"sync"
	"villa/infras/otel"
)

// Recorder is an otel.Otel that keeps every scope it opened.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (o *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	defer o.mu.Unlock()

	scope := &Scope{Name: spanName}
	o.scopes = append(o.scopes, scope)

	return ctx, scope
}

func (o *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Scope returns the first scope opened under spanName, or nil.
func (o *Recorder) Scope(spanName string) *Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, scope := range o.scopes {
		if scope.Name == spanName {
			return scope
		}
	}

	return nil
}

// NewOtel returns an otel.Otel whose scopes do nothing observable.
func NewOtel() otel.Otel {
	return &Recorder{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}
