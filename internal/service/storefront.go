package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/storefront-service/internal/catalogapi"
	"github.com/guttosm/storefront-service/internal/domain/model"
	"github.com/guttosm/storefront-service/internal/listing"
	"github.com/guttosm/storefront-service/internal/logger"
	"github.com/guttosm/storefront-service/internal/metrics"
	"github.com/guttosm/storefront-service/internal/pricing"
)

// MaxRelatedProducts caps the related products of a product page.
const MaxRelatedProducts = 5

// DefaultFetchTimeout bounds a shared listing source fetch.
const DefaultFetchTimeout = 15 * time.Second

// ListingQuery selects the products of a listing and how they are paged.
type ListingQuery struct {
	// Price is the requested price tag. Nil means no filter.
	Price *string
	// Category narrows the source list to one category slug.
	Category string
	// Search narrows the source list to a search term. Ignored when Category is set.
	Search string
	// PageSize defaults to the configured page size when not positive.
	PageSize int
}

// Listing is the first page of a new listing session.
type Listing struct {
	SessionID string
	Query     ListingQuery
	Result    listing.Result[model.Product]
}

// ListingReveal is the outcome of one load-more on a session.
type ListingReveal struct {
	SessionID    string
	Reveal       listing.Reveal[model.Product]
	VisibleCount int
}

// ProductDetail is a product page.
type ProductDetail struct {
	Product model.Product
	// Quote is set when the product is sold below its original price.
	Quote   *Quote
	Related []model.Product
}

// StorefrontService serves the catalog side of the storefront.
type StorefrontService interface {
	NewListing(ctx context.Context, q ListingQuery) (Listing, error)
	RevealMore(sessionID string) (ListingReveal, error)
	CloseListing(sessionID string) bool

	ProductDetail(ctx context.Context, slug string) (ProductDetail, error)
	Products(ctx context.Context) ([]model.Product, error)
	FeaturedProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, term string) ([]model.Product, error)
	ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
	CategoryProducts(ctx context.Context, slug string) ([]model.Product, error)
	Tags(ctx context.Context) ([]model.Tag, error)
	TagProducts(ctx context.Context, slug string) ([]model.Product, error)
	Settings(ctx context.Context) (model.SiteSettings, error)
}

// StorefrontOption configures a StorefrontServiceImpl.
type StorefrontOption func(*StorefrontServiceImpl)

// WithPageSize sets the default listing page size.
func WithPageSize(n int) StorefrontOption {
	return func(s *StorefrontServiceImpl) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithFetchTimeout bounds the shared catalog fetch behind a listing. The fetch
// is detached from the caller that started it, so it needs its own deadline.
func WithFetchTimeout(d time.Duration) StorefrontOption {
	return func(s *StorefrontServiceImpl) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithSessionOptions sets the reveal behavior of new listing sessions.
func WithSessionOptions(opts ...listing.SessionOption) StorefrontOption {
	return func(s *StorefrontServiceImpl) {
		s.sessionOpts = append(s.sessionOpts, opts...)
	}
}

// StorefrontServiceImpl implements StorefrontService on top of the catalog API.
type StorefrontServiceImpl struct {
	catalog      catalogapi.API
	pricing      PricingService
	sessions     *SessionStore
	pageSize     int
	sessionOpts  []listing.SessionOption
	fetchTimeout time.Duration
	fetches      singleflight.Group
}

var _ StorefrontService = (*StorefrontServiceImpl)(nil)

// NewStorefrontService creates the storefront service.
func NewStorefrontService(catalog catalogapi.API, pricingSvc PricingService, sessions *SessionStore, opts ...StorefrontOption) *StorefrontServiceImpl {
	s := &StorefrontServiceImpl{
		catalog:      catalog,
		pricing:      pricingSvc,
		sessions:     sessions,
		pageSize:     listing.DefaultPageSize,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewListing fetches the source products, partitions them and opens a session
// for load-more.
func (s *StorefrontServiceImpl) NewListing(ctx context.Context, q ListingQuery) (Listing, error) {
	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}

	products, err := s.listingSource(ctx, q)
	if err != nil {
		return Listing{}, err
	}

	session := listing.NewSession(toItems(products), q.Price, q.PageSize, s.sessionOpts...)
	id := s.sessions.Put(session)
	metrics.RecordListingPartition(q.Price != nil)

	res := session.Initial()
	log := logger.Component("storefront")
	log.Debug().
		Str("session_id", id).
		Int("shown", len(res.Shown)).
		Int("hidden", len(res.Hidden)).
		Int("excluded", len(res.Excluded)).
		Msg("listing created")

	return Listing{SessionID: id, Query: q, Result: res}, nil
}

// listingSource loads the products a listing partitions. Concurrent requests
// for the same source share one catalog call.
func (s *StorefrontServiceImpl) listingSource(ctx context.Context, q ListingQuery) ([]model.Product, error) {
	var key string
	var fetch func(context.Context) ([]model.Product, error)

	switch {
	case q.Category != "":
		key = "category:" + q.Category
		fetch = func(ctx context.Context) ([]model.Product, error) {
			return s.catalog.ProductsByCategory(ctx, q.Category)
		}
	case q.Search != "":
		key = "search:" + q.Search
		fetch = func(ctx context.Context) ([]model.Product, error) {
			return s.catalog.SearchProducts(ctx, q.Search)
		}
	default:
		key = "all"
		fetch = s.catalog.Products
	}

	// Concurrent callers share one fetch; a caller that gives up must not
	// cancel it for the others.
	ch := s.fetches.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load listing products: %w", ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, fmt.Errorf("load listing products: %w", r.Err)
		}
		products, _ := r.Val.([]model.Product)
		return products, nil
	}
}

func toItems(products []model.Product) []listing.Item[model.Product] {
	items := make([]listing.Item[model.Product], len(products))
	for i, p := range products {
		items[i] = listing.Item[model.Product]{PriceTag: p.PriceTag(), Value: p}
	}
	return items
}

// RevealMore reveals the next hidden products of a session.
func (s *StorefrontServiceImpl) RevealMore(sessionID string) (ListingReveal, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return ListingReveal{}, err
	}

	r := session.RevealMore()
	metrics.RecordListingReveal(len(r.Items))

	return ListingReveal{
		SessionID:    sessionID,
		Reveal:       r,
		VisibleCount: session.VisibleCount(),
	}, nil
}

// CloseListing discards a session. It reports whether the session existed.
func (s *StorefrontServiceImpl) CloseListing(sessionID string) bool {
	return s.sessions.Delete(sessionID)
}

// ProductDetail loads a product page by slug.
func (s *StorefrontServiceImpl) ProductDetail(ctx context.Context, slug string) (ProductDetail, error) {
	p, err := s.catalog.ProductBySlug(ctx, slug)
	if err != nil {
		return ProductDetail{}, err
	}

	related := p.RelatedProducts
	if len(related) == 0 {
		related, err = s.relatedProducts(ctx, p)
		if err != nil {
			log := logger.Component("storefront")
			log.Warn().Err(err).Str("slug", slug).Msg("related products unavailable")
			related = nil
		}
	}

	return ProductDetail{
		Product: p,
		Quote:   s.saleQuote(p),
		Related: mergeRelated(p.ID, related),
	}, nil
}

// saleQuote prices a product sold below its original price. The stored
// percentage wins; otherwise it is derived from the two prices.
func (s *StorefrontServiceImpl) saleQuote(p model.Product) *Quote {
	if !p.OriginalPrice.Valid || !p.Price.LessThan(p.OriginalPrice.Decimal) {
		return nil
	}
	pct := pricing.DerivePercentage(p.OriginalPrice.Decimal, p.Price)
	if p.DiscountPercentage.Valid && p.DiscountPercentage.Decimal.IsPositive() {
		pct = p.DiscountPercentage.Decimal
	}
	q := s.pricing.QuoteDecimal(p.OriginalPrice.Decimal, pct)
	if !q.Applicable() {
		return nil
	}
	return &q
}

// relatedProducts gathers candidates from the product's category first, then
// from each of its tags.
func (s *StorefrontServiceImpl) relatedProducts(ctx context.Context, p model.Product) ([]model.Product, error) {
	sources := make([][]model.Product, 1+len(p.Tags))

	g, ctx := errgroup.WithContext(ctx)
	if slug := p.CategorySlug(); slug != "" {
		g.Go(func() error {
			products, err := s.catalog.CategoryProducts(ctx, slug)
			sources[0] = products
			return err
		})
	}
	for i, tag := range p.Tags {
		g.Go(func() error {
			products, err := s.catalog.TagProducts(ctx, tag.Slug)
			sources[i+1] = products
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []model.Product
	for _, src := range sources {
		out = append(out, src...)
	}
	return out, nil
}

// mergeRelated drops self and duplicates, keeps order and caps the list.
func mergeRelated(selfID int64, candidates []model.Product) []model.Product {
	out := make([]model.Product, 0, MaxRelatedProducts)
	seen := map[int64]bool{selfID: true}
	for _, c := range candidates {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
		if len(out) == MaxRelatedProducts {
			break
		}
	}
	return out
}

func (s *StorefrontServiceImpl) Products(ctx context.Context) ([]model.Product, error) {
	return s.catalog.Products(ctx)
}

func (s *StorefrontServiceImpl) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return s.catalog.FeaturedProducts(ctx)
}

func (s *StorefrontServiceImpl) SearchProducts(ctx context.Context, term string) ([]model.Product, error) {
	return s.catalog.SearchProducts(ctx, term)
}

func (s *StorefrontServiceImpl) ProductsByPrice(ctx context.Context, lo, hi *decimal.Decimal) ([]model.Product, error) {
	return s.catalog.ProductsByPrice(ctx, lo, hi)
}

func (s *StorefrontServiceImpl) ProductsByCategory(ctx context.Context, categorySlug string) ([]model.Product, error) {
	return s.catalog.ProductsByCategory(ctx, categorySlug)
}

func (s *StorefrontServiceImpl) Categories(ctx context.Context) ([]model.Category, error) {
	return s.catalog.Categories(ctx)
}

func (s *StorefrontServiceImpl) CategoryProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return s.catalog.CategoryProducts(ctx, slug)
}

func (s *StorefrontServiceImpl) Tags(ctx context.Context) ([]model.Tag, error) {
	return s.catalog.Tags(ctx)
}

func (s *StorefrontServiceImpl) TagProducts(ctx context.Context, slug string) ([]model.Product, error) {
	return s.catalog.TagProducts(ctx, slug)
}

func (s *StorefrontServiceImpl) Settings(ctx context.Context) (model.SiteSettings, error) {
	return s.catalog.Settings(ctx)
}
