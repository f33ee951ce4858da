package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "integer", input: "100", expected: "100"},
		{name: "decimal", input: "99.99", expected: "99.99"},
		{name: "leading whitespace", input: "  42.5", expected: "42.5"},
		{name: "trailing garbage", input: "12abc", expected: "12"},
		{name: "trailing dot", input: "5.", expected: "5"},
		{name: "leading dot", input: ".75", expected: "0.75"},
		{name: "negative", input: "-10", expected: "-10"},
		{name: "explicit plus", input: "+3", expected: "3"},
		{name: "exponent", input: "1.5e2", expected: "150"},
		{name: "dangling exponent", input: "7e", expected: "7"},
		{name: "empty", input: "", expected: "0"},
		{name: "letters", input: "abc", expected: "0"},
		{name: "lone sign", input: "-", expected: "0"},
		{name: "comma decimal", input: "12,50", expected: "12"},
		{name: "huge exponent", input: "1e9999999", expected: "0"},
		{name: "huge negative exponent", input: "5e-9999999", expected: "0"},
		{name: "exponent at bound", input: "1e12", expected: "0"},
		{name: "exponent below bound", input: "1e11", expected: "100000000000"},
		{name: "too many integer digits", input: "1234567890123", expected: "0"},
		{name: "overlong numeric text", input: "1." + strings.Repeat("0", 80), expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			assert.True(t, d(tt.expected).Equal(got), "got %s", got)
		})
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		original   string
		pct        string
		applicable bool
		price      string
		amount     string
	}{
		{name: "twenty percent", original: "100", pct: "20", applicable: true, price: "80.00", amount: "20.00"},
		{name: "rounds half away from zero", original: "99.99", pct: "10", applicable: true, price: "89.99", amount: "10.00"},
		{name: "zero percent", original: "100", pct: "0", applicable: true, price: "100.00", amount: "0.00"},
		{name: "full discount", original: "49.5", pct: "100", applicable: true, price: "0.00", amount: "49.50"},
		{name: "fractional percent", original: "200", pct: "12.5", applicable: true, price: "175.00", amount: "25.00"},
		{name: "midpoint rounds up", original: "0.05", pct: "50", applicable: true, price: "0.03", amount: "0.03"},
		{name: "zero original", original: "0", pct: "50", applicable: false},
		{name: "negative original", original: "-5", pct: "10", applicable: false},
		{name: "percent above hundred", original: "100", pct: "150", applicable: false},
		{name: "negative percent", original: "100", pct: "-1", applicable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Compute(d(tt.original), d(tt.pct))

			require.Equal(t, tt.applicable, ok)
			if !ok {
				assert.Equal(t, Result{}, result)
				return
			}
			assert.Equal(t, tt.price, result.DiscountedPrice.StringFixed(2))
			assert.Equal(t, tt.amount, result.DiscountAmount.StringFixed(2))
		})
	}
}

func TestCompute_ZeroPercentKeepsOriginal(t *testing.T) {
	result, ok := Compute(d("19.999"), decimal.Zero)

	require.True(t, ok)
	assert.True(t, result.DiscountedPrice.Equal(d("19.999")))
}

func TestCompute_NeverExceedsOriginal(t *testing.T) {
	originals := []string{
		"0.01", "0.99", "1", "9.99", "99.99", "123.45", "1000", "49999.99",
		"0.001", "0.005", "0.009", "1.0051", "1.005", "9.9999", "123.4567",
	}
	for _, o := range originals {
		for pct := 0; pct <= 100; pct++ {
			original := d(o)
			result, ok := Compute(original, decimal.NewFromInt(int64(pct)))
			require.True(t, ok)
			assert.True(t, result.DiscountedPrice.LessThanOrEqual(original), "%s at %d%%", o, pct)
			assert.False(t, result.DiscountedPrice.IsNegative())
		}
	}
}

func TestComputeText(t *testing.T) {
	result, ok := ComputeText(" 100 ", "20%")
	require.True(t, ok)
	assert.Equal(t, "80.00", result.DiscountedPrice.StringFixed(2))

	_, ok = ComputeText("", "20")
	assert.False(t, ok)

	result, ok = ComputeText("1.0051", "0.001")
	require.True(t, ok)
	assert.Equal(t, "1.00", result.DiscountedPrice.StringFixed(2))

	_, ok = ComputeText("1e9999999", "10")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Discounted, Classify(d("10"), d("5")))
	assert.Equal(t, NoDiscount, Classify(d("10"), d("0")))
	assert.Equal(t, NotApplicable, Classify(d("0"), d("5")))
	assert.Equal(t, NotApplicable, Classify(d("10"), d("100.01")))

	assert.Equal(t, "applied", Discounted.String())
	assert.Equal(t, "no_discount", NoDiscount.String())
	assert.Equal(t, "not_applicable", NotApplicable.String())
}

func TestBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		original string
		pct      string
		expected string
	}{
		{
			name:     "discounted",
			original: "100",
			pct:      "20",
			expected: "₹100.00 - (₹100.00 × 20%) = ₹80.00 (Save ₹20.00)",
		},
		{
			name:     "fractional percent keeps its digits",
			original: "99.99",
			pct:      "12.5",
			expected: "₹99.99 - (₹99.99 × 12.5%) = ₹87.49 (Save ₹12.50)",
		},
		{
			name:     "no discount",
			original: "250",
			pct:      "0",
			expected: "₹250.00 (No discount applied)",
		},
		{
			name:     "missing original",
			original: "0",
			pct:      "10",
			expected: PromptMessage,
		},
		{
			name:     "percent out of range",
			original: "100",
			pct:      "150",
			expected: RangeMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Breakdown("₹", d(tt.original), d(tt.pct)))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$5.50", FormatMoney("$", d("5.5")))
	assert.Equal(t, "0.00", FormatMoney("", decimal.Zero))
}

func TestDerivePercentage(t *testing.T) {
	tests := []struct {
		original string
		price    string
		expected int64
	}{
		{original: "1000", price: "499", expected: 50},
		{original: "999", price: "499", expected: 50},
		{original: "300", price: "200", expected: 33},
		{original: "100", price: "100", expected: 0},
		{original: "100", price: "150", expected: 0},
		{original: "0", price: "10", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.original+"->"+tt.price, func(t *testing.T) {
			got := DerivePercentage(d(tt.original), d(tt.price))
			assert.Equal(t, tt.expected, got.IntPart())
		})
	}
}
