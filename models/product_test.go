package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantDecodeAcceptsNumbersAndNumericStrings(t *testing.T) {
	payload := `[
		{"id": "v1", "label": "500g", "price": 299.5, "stock": 12},
		{"id": "v2", "label": "1kg", "price": "549", "stock": "7"}
	]`

	var variants []ProductVariant
	require.NoError(t, json.Unmarshal([]byte(payload), &variants))
	require.Len(t, variants, 2)

	assert.Equal(t, 299.5, variants[0].Price)
	assert.Equal(t, 12, variants[0].Stock)
	assert.Equal(t, 549.0, variants[1].Price)
	assert.Equal(t, 7, variants[1].Stock)
}

func TestVariantDecodeRejectsMalformedStock(t *testing.T) {
	var v ProductVariant
	err := json.Unmarshal([]byte(`{"id": "v1", "price": 100, "stock": "plenty"}`), &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad stock")

	err = json.Unmarshal([]byte(`{"id": "v1", "price": {"amount": 100}, "stock": 5}`), &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad price")
}

func TestVariantDecodeMissingFieldsDefaultToZero(t *testing.T) {
	var v ProductVariant
	require.NoError(t, json.Unmarshal([]byte(`{"id": "v1"}`), &v))
	assert.Zero(t, v.Price)
	assert.Zero(t, v.Stock)
}

func TestCheckAvailableNonVariant(t *testing.T) {
	p := Product{Name: "Chew Toy", StockQuantity: 5, InStock: true}

	assert.NoError(t, p.CheckAvailable("", 5))
	assert.ErrorIs(t, p.CheckAvailable("", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.CheckAvailable("", -2), ErrInvalidQuantity)

	err := p.CheckAvailable("", 6)
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Chew Toy", stockErr.ProductName)
	assert.Contains(t, stockErr.Detail, "main stock: 5")
}

func TestCheckAvailableDisabledFlagWinsOverPositiveStock(t *testing.T) {
	p := Product{Name: "Recalled Treats", StockQuantity: 50, InStock: false}

	err := p.CheckAvailable("", 1)
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Contains(t, stockErr.Detail, "marked as out of stock")
}

func TestCheckAvailableVariantPath(t *testing.T) {
	p := Product{
		Name:        "Dry Food",
		HasVariants: true,
		Variants: []ProductVariant{
			{ID: "v1", Label: "500g", Stock: 3},
			{ID: "v2", Label: "2kg", Stock: 0},
		},
	}

	assert.NoError(t, p.CheckAvailable("v1", 3))

	err := p.CheckAvailable("v1", 4)
	var stockErr *OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Contains(t, stockErr.Detail, "variant stock: 3")

	err = p.CheckAvailable("missing", 1)
	require.ErrorAs(t, err, &stockErr)
	assert.Contains(t, stockErr.Detail, "variant not found")
}

func TestDecrementStockNonVariant(t *testing.T) {
	p := Product{StockQuantity: 5, InStock: true}

	p.DecrementStock("", 3)
	assert.Equal(t, 2, p.StockQuantity)
	assert.True(t, p.InStock)

	p.DecrementStock("", 2)
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.InStock)

	// floors at zero
	p.StockQuantity = 1
	p.DecrementStock("", 10)
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.InStock)
}

func TestDecrementStockVariant(t *testing.T) {
	p := Product{
		HasVariants: true,
		Variants: []ProductVariant{
			{ID: "v1", Stock: 4},
			{ID: "v2", Stock: 9},
		},
	}

	p.DecrementStock("v1", 3)
	assert.Equal(t, 1, p.Variants[0].Stock)
	assert.Equal(t, 9, p.Variants[1].Stock)

	p.DecrementStock("v1", 5)
	assert.Equal(t, 0, p.Variants[0].Stock)
}

func TestDecrementStockIgnoresNonPositiveQuantity(t *testing.T) {
	p := Product{StockQuantity: 5, InStock: true}
	p.DecrementStock("", 0)
	p.DecrementStock("", -1)
	assert.Equal(t, 5, p.StockQuantity)
}

func TestDeriveVariantLabelPrefersLabelThenWeightThenSize(t *testing.T) {
	p := Product{
		HasVariants: true,
		Variants: []ProductVariant{
			{ID: "v1", Label: "500g"},
			{ID: "v2", Weight: "2", WeightUnit: "kg"},
			{ID: "v3", Size: "30", SizeUnit: "cm"},
		},
	}

	assert.Equal(t, "500g", p.DeriveVariantLabel("v1"))
	assert.Equal(t, "2kg", p.DeriveVariantLabel("v2"))
	assert.Equal(t, "30cm", p.DeriveVariantLabel("v3"))
}

func TestDeriveVariantLabelDoesNotDoubleAppendUnit(t *testing.T) {
	p := Product{
		HasVariants: true,
		Variants:    []ProductVariant{{ID: "v1", Label: "1.5 kg", WeightUnit: "kg"}},
	}
	assert.Equal(t, "1.5 kg", p.DeriveVariantLabel("v1"))
}

func TestDeriveVariantLabelAcceptsShortTextualLabels(t *testing.T) {
	p := Product{
		HasVariants: true,
		Variants:    []ProductVariant{{ID: "v1", Label: "Medium"}},
	}
	assert.Equal(t, "Medium", p.DeriveVariantLabel("v1"))
}

func TestDeriveVariantLabelRejectsCategoryLikeText(t *testing.T) {
	p := Product{
		HasVariants: true,
		Weight:      "250",
		WeightUnit:  "g",
		Variants:    []ProductVariant{{ID: "v1", Label: "Oral Care"}},
	}
	// deny-listed label falls back to the product weight
	assert.Equal(t, "250g", p.DeriveVariantLabel("v1"))
}

func TestDeriveVariantLabelFallsBackToSubcategoryLabel(t *testing.T) {
	p := Product{
		HasVariants:      true,
		SubcategoryLabel: "Up to 10kg",
		Variants:         []ProductVariant{{ID: "v1", Label: "Antibiotics Pack Special Edition Bundle"}},
	}
	assert.Equal(t, "Up to 10kg", p.DeriveVariantLabel("v1"))
}

func TestDeriveVariantLabelEmptyWhenNothingUsable(t *testing.T) {
	p := Product{
		HasVariants:      true,
		SubcategoryLabel: "General Care",
		Variants:         []ProductVariant{{ID: "v1", Label: "Medicine For Dogs And Cats"}},
	}
	assert.Equal(t, "", p.DeriveVariantLabel("v1"))
}

func TestDeriveVariantLabelUnknownVariantUsesProductWeight(t *testing.T) {
	p := Product{HasVariants: true, Weight: "1", WeightUnit: "kg"}
	assert.Equal(t, "1kg", p.DeriveVariantLabel("nope"))
}

func TestAcceptableLabel(t *testing.T) {
	cases := []struct {
		label string
		want  bool
	}{
		{"", false},
		{"500g", true},
		{"2 kg", true},
		{"30cm", true},
		{"Large", true},
		{"Medium Breed", true},
		{"Oral Care", false},
		{"Antibiotics", false},
		{"Category A", false},
		{"A very long freeform label that goes on", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, acceptableLabel(tc.label), "label %q", tc.label)
	}
}
