// Package pricing computes discounted prices for the storefront's product editor
// and detail pages.
package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Display precision for money values.
const moneyPlaces = 2

// Bounds on what ParseAmount accepts. Anything larger reads as zero.
const (
	maxAmountText     = 64
	maxAmountExponent = 12
	maxIntegerDigits  = 12
)

const (
	// PromptMessage is shown while there is no usable original price.
	PromptMessage = "Enter Original Price and Discount Percentage to calculate discounted price."
	// RangeMessage is shown when the original price is usable but the percentage is not.
	RangeMessage = "Discount percentage must be between 0 and 100."
)

var (
	hundred = decimal.NewFromInt(100)

	numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)
)

// Outcome classifies a pair of inputs.
type Outcome int

const (
	// NotApplicable means the inputs fail validation and no price is produced.
	NotApplicable Outcome = iota
	// NoDiscount means a valid original price with a 0% discount.
	NoDiscount
	// Discounted means a valid original price with a positive discount.
	Discounted
)

// String returns the metrics label for the outcome.
func (o Outcome) String() string {
	switch o {
	case NoDiscount:
		return "no_discount"
	case Discounted:
		return "applied"
	default:
		return "not_applicable"
	}
}

// Result is a computed price pair.
type Result struct {
	DiscountedPrice decimal.Decimal
	DiscountAmount  decimal.Decimal
}

// ParseAmount reads a number from free text the way a lenient form field does:
// leading whitespace is skipped and the longest numeric prefix wins, so "12abc"
// reads as 12. Anything without a numeric prefix reads as zero, as does a
// prefix that is too long, carries an exponent beyond ±12, or has more than
// twelve integer digits.
func ParseAmount(text string) decimal.Decimal {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	m := numericPrefix.FindString(text)
	if m == "" {
		return decimal.Zero
	}
	// "5." is a valid prefix but not a valid decimal literal.
	m = strings.Replace(m, ".e", "e", 1)
	m = strings.Replace(m, ".E", "E", 1)
	m = strings.TrimSuffix(m, ".")
	if len(m) > maxAmountText {
		return decimal.Zero
	}
	if i := strings.IndexAny(m, "eE"); i >= 0 {
		exp, err := strconv.Atoi(m[i+1:])
		if err != nil || exp > maxAmountExponent || exp < -maxAmountExponent {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	if !d.IsZero() && d.NumDigits()+int(d.Exponent()) > maxIntegerDigits {
		return decimal.Zero
	}
	return d
}

// Classify reports which outcome Compute would produce.
func Classify(original, pct decimal.Decimal) Outcome {
	if !original.IsPositive() || pct.IsNegative() || pct.GreaterThan(hundred) {
		return NotApplicable
	}
	if pct.IsZero() {
		return NoDiscount
	}
	return Discounted
}

// Compute applies pct percent off original. It reports false when original is
// not positive or pct falls outside [0, 100]. Both returned values are rounded
// half away from zero to two places; a 0% discount returns original untouched.
func Compute(original, pct decimal.Decimal) (Result, bool) {
	switch Classify(original, pct) {
	case NoDiscount:
		return Result{DiscountedPrice: original, DiscountAmount: decimal.Zero}, true
	case Discounted:
		amount := original.Mul(pct).Div(hundred)
		price := original.Sub(amount).Round(moneyPlaces)
		if price.GreaterThan(original) {
			// sub-cent originals can round up past themselves
			price = original.Truncate(moneyPlaces)
		}
		return Result{
			DiscountedPrice: price,
			DiscountAmount:  amount.Round(moneyPlaces),
		}, true
	default:
		return Result{}, false
	}
}

// ComputeText parses both inputs with ParseAmount and computes.
func ComputeText(original, pct string) (Result, bool) {
	return Compute(ParseAmount(original), ParseAmount(pct))
}

// FormatMoney renders d with two decimals behind the currency symbol.
func FormatMoney(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(moneyPlaces)
}

// Breakdown explains a computation in one line, e.g.
// "₹100.00 - (₹100.00 × 20%) = ₹80.00 (Save ₹20.00)".
func Breakdown(currency string, original, pct decimal.Decimal) string {
	result, _ := Compute(original, pct)
	switch Classify(original, pct) {
	case Discounted:
		orig := FormatMoney(currency, original)
		return fmt.Sprintf("%s - (%s × %s%%) = %s (Save %s)",
			orig, orig, pct.String(),
			FormatMoney(currency, result.DiscountedPrice),
			FormatMoney(currency, result.DiscountAmount))
	case NoDiscount:
		return FormatMoney(currency, original) + " (No discount applied)"
	default:
		if original.IsPositive() {
			return RangeMessage
		}
		return PromptMessage
	}
}

// DerivePercentage returns the whole-number discount implied by a sale price,
// truncated toward zero. It is zero unless price is below a positive original.
func DerivePercentage(original, price decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() || !price.LessThan(original) {
		return decimal.Zero
	}
	return original.Sub(price).Div(original).Mul(hundred).Truncate(0)
}
