package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/storefront-service/internal/pricing"
	"github.com/guttosm/storefront-service/internal/schedule"
	"github.com/guttosm/storefront-service/internal/service/cache"
)

// ErrEditorNotFound is returned for unknown or expired price editors.
var ErrEditorNotFound = errors.New("price editor not found")

// EditorState is what a product editor's price widget currently displays.
type EditorState struct {
	Price       string
	Info        string
	Highlighted bool
}

// editorSurface records what the live calculator renders.
type editorSurface struct {
	mu    sync.Mutex
	state EditorState
}

func (s *editorSurface) SetPrice(value string) {
	s.mu.Lock()
	s.state.Price = value
	s.mu.Unlock()
}

func (s *editorSurface) SetInfo(text string) {
	s.mu.Lock()
	s.state.Info = text
	s.mu.Unlock()
}

func (s *editorSurface) SetHighlight(on bool) {
	s.mu.Lock()
	s.state.Highlighted = on
	s.mu.Unlock()
}

func (s *editorSurface) snapshot() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

type priceEditor struct {
	calc    *pricing.LiveCalculator
	surface *editorSurface
}

// PriceEditorService keeps one live discount calculator per open product
// editor form. Each edit recomputes the price and flashes the highlight.
type PriceEditorService interface {
	Open(originalPrice, discountPercentage string) (string, EditorState)
	Edit(id string, field pricing.Field, text string) (EditorState, error)
	State(id string) (EditorState, error)
	Close(id string) bool
	Stop()
}

// PriceEditorServiceImpl stores editors in a TTL cache. Expired or evicted
// editors are unmounted.
type PriceEditorServiceImpl struct {
	editors   cache.Cache[string, *priceEditor]
	scheduler schedule.Scheduler
	opts      []pricing.LiveOption
	newID     func() string
}

var _ PriceEditorService = (*PriceEditorServiceImpl)(nil)

// NewPriceEditorService creates an editor store holding up to capacity editors.
func NewPriceEditorService(capacity int, ttl time.Duration, scheduler schedule.Scheduler, opts ...pricing.LiveOption) *PriceEditorServiceImpl {
	return &PriceEditorServiceImpl{
		editors: cache.NewTTL(cache.Config[string, *priceEditor]{
			Name:     "price_editors",
			Capacity: capacity,
			TTL:      ttl,
			OnEvict: func(_ string, e *priceEditor) {
				e.calc.Unmount()
			},
		}),
		scheduler: scheduler,
		opts:      opts,
		newID:     uuid.NewString,
	}
}

// Open mounts a calculator with the form's initial values.
func (s *PriceEditorServiceImpl) Open(originalPrice, discountPercentage string) (string, EditorState) {
	surface := &editorSurface{}
	e := &priceEditor{
		calc:    pricing.NewLiveCalculator(surface, s.scheduler, s.opts...),
		surface: surface,
	}
	e.calc.Mount(originalPrice, discountPercentage)

	id := s.newID()
	s.editors.Set(id, e)
	return id, surface.snapshot()
}

// Edit applies new text to one field of editor id.
func (s *PriceEditorServiceImpl) Edit(id string, field pricing.Field, text string) (EditorState, error) {
	e, ok := s.editors.Get(id)
	if !ok {
		return EditorState{}, ErrEditorNotFound
	}
	e.calc.Edit(field, text)
	s.editors.Set(id, e)
	return e.surface.snapshot(), nil
}

// State returns what editor id displays right now.
func (s *PriceEditorServiceImpl) State(id string) (EditorState, error) {
	e, ok := s.editors.Get(id)
	if !ok {
		return EditorState{}, ErrEditorNotFound
	}
	return e.surface.snapshot(), nil
}

// Close unmounts and forgets editor id.
func (s *PriceEditorServiceImpl) Close(id string) bool {
	if _, ok := s.editors.Get(id); !ok {
		return false
	}
	s.editors.Invalidate(id)
	return true
}

// Stop unmounts every editor.
func (s *PriceEditorServiceImpl) Stop() {
	s.editors.Clear()
	s.editors.Stop()
}
