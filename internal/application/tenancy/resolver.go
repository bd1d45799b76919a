// Package tenancy resolves white-label tenants from request hosts.
package tenancy

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/glambooking/backend/internal/domain/business"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/domain/tenancy"
	"github.com/glambooking/backend/internal/infrastructure/cache"
	"github.com/glambooking/backend/internal/infrastructure/logger"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "tenant:host:"

// Resolution is the tenant a host routes to
type Resolution struct {
	BusinessID   uuid.UUID         `json:"businessId"`
	Subdomain    string            `json:"subdomain,omitempty"`
	CustomDomain string            `json:"customDomain,omitempty"`
	Theme        business.Branding `json:"theme"`
}

// cacheEntry stores positive and negative lookups alike
type cacheEntry struct {
	Found      bool        `json:"found"`
	Resolution *Resolution `json:"resolution,omitempty"`
}

// ResolverConfig holds resolver dependencies
type ResolverConfig struct {
	Classifier  *tenancy.Classifier
	Repo        business.WhiteLabelRepository
	Cache       cache.Store // optional
	CacheTTL    time.Duration
	NegativeTTL time.Duration
	Logger      *zap.Logger
}

// Resolver maps request hosts to white-label tenants. It is best effort:
// every failure degrades to "no tenant".
type Resolver struct {
	classifier  *tenancy.Classifier
	repo        business.WhiteLabelRepository
	cache       cache.Store
	ttl         time.Duration
	negativeTTL time.Duration
	group       singleflight.Group
	generation  atomic.Uint64 // advanced by Invalidate
	logger      *zap.Logger
}

// NewResolver creates a resolver
func NewResolver(cfg ResolverConfig) *Resolver {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	negativeTTL := cfg.NegativeTTL
	if negativeTTL <= 0 {
		negativeTTL = cfg.CacheTTL
	}
	return &Resolver{
		classifier:  cfg.Classifier,
		repo:        cfg.Repo,
		cache:       cfg.Cache,
		ttl:         cfg.CacheTTL,
		negativeTTL: negativeTTL,
		logger:      log.Named("tenant_resolver"),
	}
}

// Classify exposes the host classification used by Resolve
func (r *Resolver) Classify(host string) tenancy.HostInfo {
	return r.classifier.Classify(host)
}

// Resolve returns the tenant for host, or nil when the host is the platform
// itself or maps to no active white-label configuration. It never fails.
func (r *Resolver) Resolve(ctx context.Context, host string) *Resolution {
	info := r.classifier.Classify(host)
	if !info.IsTenantCandidate() {
		return nil
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "tenant_resolver", "resolve",
		attribute.String(telemetry.AttrHost, info.Host),
		attribute.String(telemetry.AttrHostKind, string(info.Kind)),
	)
	defer span.End()

	if entry, ok := r.cached(ctx, info.Host); ok {
		span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, true))
		return entry.Resolution
	}
	span.SetAttributes(attribute.Bool(telemetry.AttrCacheHit, false))

	v, err, _ := r.group.Do(info.Host, func() (any, error) {
		return r.lookup(ctx, info)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		r.logger.Warn("Tenant lookup failed, serving primary site",
			zap.String("host", info.Host),
			zap.String("request_id", logger.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil
	}
	return v.(*Resolution)
}

// lookup queries the store by the single key the host shape selects and
// caches the outcome. Store errors are returned uncached.
func (r *Resolver) lookup(ctx context.Context, info tenancy.HostInfo) (*Resolution, error) {
	var (
		cfg *business.WhiteLabelConfig
		err error
	)
	// a lookup that races an Invalidate answers its callers but is not cached
	gen := r.generation.Load()
	switch info.Kind {
	case tenancy.HostSubdomain:
		cfg, err = r.repo.FindBySubdomain(ctx, info.Label)
	case tenancy.HostCustomDomain:
		cfg, err = r.repo.FindByCustomDomain(ctx, info.Host)
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var res *Resolution
	if cfg != nil && cfg.IsActive {
		res = resolutionFrom(cfg)
	}
	if r.generation.Load() == gen {
		r.store(ctx, info.Host, res)
	}
	return res, nil
}

func resolutionFrom(cfg *business.WhiteLabelConfig) *Resolution {
	res := &Resolution{BusinessID: cfg.BusinessID, Theme: cfg.Branding}
	if cfg.Subdomain != nil {
		res.Subdomain = *cfg.Subdomain
	}
	if cfg.CustomDomain != nil {
		res.CustomDomain = *cfg.CustomDomain
	}
	return res
}

// Invalidate drops cached lookups for the given hosts. Lookups already in
// flight still answer their callers but are not cached.
func (r *Resolver) Invalidate(ctx context.Context, hosts ...string) {
	if len(hosts) == 0 {
		return
	}
	r.generation.Add(1)
	keys := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = tenancy.NormalizeHost(h); h != "" {
			r.group.Forget(h)
			keys = append(keys, cacheKeyPrefix+h)
		}
	}
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		r.logger.Warn("Failed to invalidate tenant cache", zap.Strings("hosts", hosts), zap.Error(err))
	}
}

func (r *Resolver) cached(ctx context.Context, host string) (cacheEntry, bool) {
	if r.cache == nil || r.ttl <= 0 {
		return cacheEntry{}, false
	}
	raw, ok, err := r.cache.Get(ctx, cacheKeyPrefix+host)
	if err != nil {
		r.logger.Warn("Tenant cache read failed", zap.String("host", host), zap.Error(err))
		return cacheEntry{}, false
	}
	if !ok {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		r.logger.Warn("Discarding malformed tenant cache entry", zap.String("host", host), zap.Error(err))
		return cacheEntry{}, false
	}
	return entry, true
}

func (r *Resolver) store(ctx context.Context, host string, res *Resolution) {
	if r.cache == nil || r.ttl <= 0 {
		return
	}
	entry := cacheEntry{Found: res != nil, Resolution: res}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ttl := r.ttl
	if res == nil {
		ttl = r.negativeTTL
	}
	if err := r.cache.Set(ctx, cacheKeyPrefix+host, raw, ttl); err != nil {
		r.logger.Warn("Tenant cache write failed", zap.String("host", host), zap.Error(err))
	}
}
