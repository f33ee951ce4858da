package pricing

import (
	"sync"
	"time"

	"github.com/guttosm/storefront-service/internal/logger"
	"github.com/guttosm/storefront-service/internal/schedule"
)

// DefaultHighlightDuration is how long the price field stays highlighted after an update.
const DefaultHighlightDuration = 500 * time.Millisecond

// Field identifies an editable input of the calculator form.
type Field int

const (
	FieldOriginalPrice Field = iota
	FieldDiscountPercentage
)

// Surface is the rendering side of a calculator form.
type Surface interface {
	// SetPrice writes the discounted price field. An empty value clears it.
	SetPrice(value string)
	SetInfo(text string)
	SetHighlight(on bool)
}

// LiveOption configures a LiveCalculator.
type LiveOption func(*LiveCalculator)

// WithCurrency sets the currency symbol used in the info line.
func WithCurrency(symbol string) LiveOption {
	return func(l *LiveCalculator) {
		l.currency = symbol
	}
}

// WithHighlightDuration sets how long the highlight lasts. Non-positive values are ignored.
func WithHighlightDuration(d time.Duration) LiveOption {
	return func(l *LiveCalculator) {
		if d > 0 {
			l.highlight = d
		}
	}
}

// WithClearOnInvalid clears the price field when the original price stops being
// usable. By default the last computed price is left in place.
func WithClearOnInvalid(clear bool) LiveOption {
	return func(l *LiveCalculator) {
		l.clearOnInvalid = clear
	}
}

// LiveCalculator recomputes the discounted price on every edit of a mounted form.
type LiveCalculator struct {
	mu sync.Mutex

	surface   Surface
	scheduler schedule.Scheduler

	currency       string
	highlight      time.Duration
	clearOnInvalid bool

	original string
	percent  string

	mounted bool
	revert  schedule.Handle
	// generation invalidates reverts that fired after being superseded.
	generation uint64
}

// NewLiveCalculator binds a calculator to surface. Highlights are reverted through scheduler.
func NewLiveCalculator(surface Surface, scheduler schedule.Scheduler, opts ...LiveOption) *LiveCalculator {
	l := &LiveCalculator{
		surface:   surface,
		scheduler: scheduler,
		currency:  "₹",
		highlight: DefaultHighlightDuration,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mount attaches the calculator with the form's initial values. If both fields
// already hold text it computes once right away. Mounting an attached calculator
// does nothing.
func (l *LiveCalculator) Mount(original, percent string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mounted {
		return
	}
	l.mounted = true
	l.original = original
	l.percent = percent

	if original != "" && percent != "" {
		l.recomputeLocked()
	}
}

// Unmount detaches the calculator and cancels a pending highlight revert,
// reverting it immediately. Later edits are ignored until the next Mount.
func (l *LiveCalculator) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.mounted {
		return
	}
	l.mounted = false
	if l.cancelRevertLocked() {
		l.surface.SetHighlight(false)
	}
}

// Mounted reports whether the calculator is attached.
func (l *LiveCalculator) Mounted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mounted
}

// Edit records new text for field and recomputes.
func (l *LiveCalculator) Edit(field Field, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.mounted {
		return
	}
	switch field {
	case FieldOriginalPrice:
		l.original = text
	case FieldDiscountPercentage:
		l.percent = text
	default:
		return
	}
	l.recomputeLocked()
}

func (l *LiveCalculator) recomputeLocked() {
	original := ParseAmount(l.original)
	percent := ParseAmount(l.percent)

	if result, ok := Compute(original, percent); ok {
		l.surface.SetPrice(result.DiscountedPrice.StringFixed(moneyPlaces))
		l.flashLocked()
	} else if l.clearOnInvalid && !original.IsPositive() {
		l.surface.SetPrice("")
	}
	l.surface.SetInfo(Breakdown(l.currency, original, percent))

	log := logger.Component("pricing")
	log.Debug().
		Str("original_price", original.String()).
		Str("discount_percentage", percent.String()).
		Str("outcome", Classify(original, percent).String()).
		Msg("live price recomputed")
}

func (l *LiveCalculator) flashLocked() {
	l.cancelRevertLocked()
	l.generation++
	gen := l.generation

	l.surface.SetHighlight(true)
	l.revert = l.scheduler.After(l.highlight, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.generation || !l.mounted {
			return
		}
		l.revert = nil
		l.surface.SetHighlight(false)
	})
}

func (l *LiveCalculator) cancelRevertLocked() bool {
	if l.revert == nil {
		return false
	}
	pending := l.revert.Cancel()
	l.revert = nil
	l.generation++
	return pending
}
