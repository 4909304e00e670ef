package intent

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/concierge/internal/embedding"
)

type provisionState int

const (
	stateUninitialized provisionState = iota
	stateAvailable
	stateUnavailable
)

// Provisioner owns lazy, at-most-once construction of the shared embedder.
// The first Acquire triggers construction under the mutex; concurrent first
// callers block and observe the same outcome. A failed construction is
// permanent for the process lifetime: model loads are expensive and failures
// are environmental, so retrying on every query would only add latency.
type Provisioner struct {
	construct func() (embedding.Embedder, error)
	logger    *zap.Logger

	mu       sync.Mutex
	state    provisionState
	embedder embedding.Embedder
}

// NewProvisioner creates a provisioner that builds the embedder with construct
// on first use. The outcome of the first attempt is logged exactly once.
func NewProvisioner(construct func() (embedding.Embedder, error), logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provisioner{construct: construct, logger: logger}
}

// Acquire returns the shared embedder, constructing it on first call.
// The second return is false when the model is permanently unavailable;
// construction errors are never propagated.
func (p *Provisioner) Acquire() (embedding.Embedder, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateAvailable:
		return p.embedder, true
	case stateUnavailable:
		return nil, false
	}

	p.logger.Info("loading embedding model")
	emb, err := p.construct()
	if err != nil {
		p.state = stateUnavailable
		p.logger.Error("embedding model unavailable, falling back to keyword matching", zap.Error(err))
		return nil, false
	}
	p.state = stateAvailable
	p.embedder = emb
	p.logger.Info("embedding model loaded", zap.Int("dimensions", emb.Dimensions()))
	return emb, true
}

// Status reports the current provisioning state without triggering construction.
func (p *Provisioner) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case stateAvailable:
		return "available"
	case stateUnavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// Close releases the embedder if one was constructed.
func (p *Provisioner) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.embedder != nil {
		err := p.embedder.Close()
		p.embedder = nil
		p.state = stateUnavailable
		return err
	}
	return nil
}
