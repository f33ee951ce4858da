package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/storefront-service/internal/metrics"
	"github.com/guttosm/storefront-service/internal/pricing"
	"github.com/guttosm/storefront-service/internal/service/cache"
)

// Quote is one evaluated calculator input pair.
type Quote struct {
	OriginalPrice      decimal.Decimal
	DiscountPercentage decimal.Decimal
	Outcome            pricing.Outcome
	// Result is the zero value unless Outcome is applicable.
	Result    pricing.Result
	Breakdown string
}

// Applicable reports whether the quote carries a computed price.
func (q Quote) Applicable() bool {
	return q.Outcome != pricing.NotApplicable
}

// PricingService evaluates discount calculator inputs.
type PricingService interface {
	// Quote parses both fields leniently and evaluates them.
	Quote(originalPrice, discountPercentage string) Quote
	// QuoteDecimal evaluates already parsed values.
	QuoteDecimal(originalPrice, discountPercentage decimal.Decimal) Quote
	// InvalidateCache drops every cached quote.
	InvalidateCache()
}

// PricingOption configures a PricingServiceImpl.
type PricingOption func(*PricingServiceImpl)

// PricingServiceImpl implements PricingService with an optional quote cache.
type PricingServiceImpl struct {
	currency string
	cache    cache.Cache[string, Quote]
}

// NewPricingService creates a pricing service. The currency symbol defaults to "₹".
func NewPricingService(opts ...PricingOption) *PricingServiceImpl {
	s := &PricingServiceImpl{currency: "₹"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCurrencySymbol sets the symbol used in breakdown lines.
func WithCurrencySymbol(symbol string) PricingOption {
	return func(s *PricingServiceImpl) {
		s.currency = symbol
	}
}

// WithQuoteCache enables quote caching. More than one shard selects the
// sharded implementation.
func WithQuoteCache(capacity int, ttl time.Duration, shards int) PricingOption {
	return func(s *PricingServiceImpl) {
		if capacity <= 0 {
			return
		}
		cfg := cache.Config[string, Quote]{Name: "quotes", Capacity: capacity, TTL: ttl}
		if shards > 1 {
			s.cache = cache.NewSharded(cfg, shards)
			return
		}
		s.cache = cache.NewTTL(cfg)
	}
}

// WithQuoteCacheInterface injects a cache implementation.
func WithQuoteCacheInterface(c cache.Cache[string, Quote]) PricingOption {
	return func(s *PricingServiceImpl) {
		s.cache = c
	}
}

// Quote parses both fields leniently and evaluates them.
func (s *PricingServiceImpl) Quote(originalPrice, discountPercentage string) Quote {
	return s.QuoteDecimal(pricing.ParseAmount(originalPrice), pricing.ParseAmount(discountPercentage))
}

// QuoteDecimal evaluates already parsed values. Inputs that differ only in
// trailing zeros share a cache entry.
func (s *PricingServiceImpl) QuoteDecimal(originalPrice, discountPercentage decimal.Decimal) Quote {
	start := time.Now()
	key := originalPrice.String() + "|" + discountPercentage.String()

	if s.cache != nil {
		if q, ok := s.cache.Get(key); ok {
			metrics.RecordPriceCalculation(time.Since(start), q.Outcome.String())
			return q
		}
	}

	result, _ := pricing.Compute(originalPrice, discountPercentage)
	q := Quote{
		OriginalPrice:      originalPrice,
		DiscountPercentage: discountPercentage,
		Outcome:            pricing.Classify(originalPrice, discountPercentage),
		Result:             result,
		Breakdown:          pricing.Breakdown(s.currency, originalPrice, discountPercentage),
	}

	if s.cache != nil {
		s.cache.Set(key, q)
	}
	metrics.RecordPriceCalculation(time.Since(start), q.Outcome.String())
	return q
}

// InvalidateCache drops every cached quote.
func (s *PricingServiceImpl) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the quote cache.
func (s *PricingServiceImpl) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}
