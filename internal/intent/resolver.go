package intent

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/concierge/internal/embedding"
	"github.com/hyperjump/concierge/internal/vector"
	"github.com/hyperjump/concierge/pkg/utils"
)

// Strategy identifies which resolution path produced a label.
type Strategy string

const (
	// StrategyKeyword is the static substring fallback path.
	StrategyKeyword Strategy = "keyword"
	// StrategySemantic is the embedding similarity path.
	StrategySemantic Strategy = "semantic"
)

// Resolver maps a raw query string to exactly one Label. It never returns an
// error: every failure degrades to Unknown and is observable only through logs.
// A Resolver is safe for concurrent use.
type Resolver struct {
	provisioner *Provisioner
	rules       []KeywordRule
	labels      []Label
	prototypes  map[Label]string
	threshold   float64
	logger      *zap.Logger

	// Label prototype embeddings, computed at most once on the semantic path.
	// Guarded separately from the decision cache so a transient embedding
	// failure leaves them recomputable on the next call.
	protoMu   sync.Mutex
	protoVecs [][]float32

	// Decision cache: normalized query -> final label, including Unknown, so a
	// query that narrowly misses the threshold is never rescored. Unbounded for
	// the process lifetime; lost updates between concurrent writers are
	// harmless because the decision is a pure function of the query.
	cacheMu sync.RWMutex
	cache   map[string]Label
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithThreshold overrides the similarity threshold (strictly-greater comparison).
func WithThreshold(threshold float64) ResolverOption {
	return func(r *Resolver) { r.threshold = threshold }
}

// WithPrototypes overrides the prototype text for the given labels.
func WithPrototypes(overrides map[Label]string) ResolverOption {
	return func(r *Resolver) {
		for label, text := range overrides {
			if text != "" {
				r.prototypes[label] = text
			}
		}
	}
}

// WithKeywordRules replaces the fallback rule table.
func WithKeywordRules(rules []KeywordRule) ResolverOption {
	return func(r *Resolver) { r.rules = rules }
}

// NewResolver creates a resolver over the fixed label set, using provisioner
// to decide between the semantic and keyword strategies per call.
func NewResolver(provisioner *Provisioner, logger *zap.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		provisioner: provisioner,
		rules:       DefaultKeywordRules,
		labels:      Labels,
		prototypes:  make(map[Label]string, len(DefaultPrototypes)),
		threshold:   DefaultThreshold,
		logger:      logger,
		cache:       make(map[string]Label),
	}
	for label, text := range DefaultPrototypes {
		r.prototypes[label] = text
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps query to a label from the fixed set, or Unknown.
func (r *Resolver) Resolve(ctx context.Context, query string) Label {
	label, _ := r.Classify(ctx, query)
	return label
}

// Classify is Resolve plus the strategy that produced the label.
func (r *Resolver) Classify(ctx context.Context, query string) (Label, Strategy) {
	q := utils.NormalizeQuery(query)

	emb, ok := r.provisioner.Acquire()
	if !ok {
		return r.resolveKeyword(q), StrategyKeyword
	}
	return r.resolveSemantic(ctx, emb, q), StrategySemantic
}

// resolveKeyword checks the rule table in declared order; the first rule with
// any trigger contained in the normalized query wins.
func (r *Resolver) resolveKeyword(q string) Label {
	for _, rule := range r.rules {
		for _, trigger := range rule.Triggers {
			if trigger != "" && strings.Contains(q, trigger) {
				return rule.Label
			}
		}
	}
	return Unknown
}

func (r *Resolver) resolveSemantic(ctx context.Context, emb embedding.Embedder, q string) Label {
	r.cacheMu.RLock()
	cached, hit := r.cache[q]
	r.cacheMu.RUnlock()
	if hit {
		return cached
	}

	queryVec, err := emb.Embed(ctx, q)
	if err != nil {
		r.logger.Error("query embedding failed",
			zap.String("query", utils.Truncate(q, 200)),
			zap.Error(err))
		return Unknown
	}

	protoVecs, err := r.labelVectors(ctx, emb)
	if err != nil {
		r.logger.Error("label prototype embedding failed", zap.Error(err))
		return Unknown
	}

	bestScore := -1.0
	bestLabel := Unknown
	for i, label := range r.labels {
		score := vector.CosineSimilarity(queryVec, protoVecs[i])
		if score > bestScore {
			bestScore = score
			bestLabel = label
		}
	}

	decision := Unknown
	if bestScore > r.threshold {
		decision = bestLabel
	}
	r.logger.Debug("semantic resolution",
		zap.String("query", utils.Truncate(q, 200)),
		zap.String("label", string(decision)),
		zap.Float64("score", bestScore))

	r.cacheMu.Lock()
	r.cache[q] = decision
	r.cacheMu.Unlock()
	return decision
}

// labelVectors returns the prototype embeddings, computing them on first use.
// On failure nothing is stored, so the next call retries.
func (r *Resolver) labelVectors(ctx context.Context, emb embedding.Embedder) ([][]float32, error) {
	r.protoMu.Lock()
	defer r.protoMu.Unlock()

	if r.protoVecs != nil {
		return r.protoVecs, nil
	}

	texts := make([]string, len(r.labels))
	for i, label := range r.labels {
		texts[i] = r.prototypes[label]
	}
	vecs, err := emb.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	r.protoVecs = vecs
	return vecs, nil
}

// CacheSize returns the number of cached decisions.
func (r *Resolver) CacheSize() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}
