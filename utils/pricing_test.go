package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFeeThreshold(t *testing.T) {
	assert.Equal(t, StandardShippingFee, ShippingFee(0))
	assert.Equal(t, StandardShippingFee, ShippingFee(200))
	assert.Equal(t, StandardShippingFee, ShippingFee(499.99))
	assert.Equal(t, 0.0, ShippingFee(500))
	assert.Equal(t, 0.0, ShippingFee(500.01))
	assert.Equal(t, 0.0, ShippingFee(10000))
}

func TestComputeTotals(t *testing.T) {
	fee, total := ComputeTotals(200, 0)
	assert.Equal(t, 50.0, fee)
	assert.Equal(t, 250.0, total)

	fee, total = ComputeTotals(600, 0)
	assert.Equal(t, 0.0, fee)
	assert.Equal(t, 600.0, total)

	fee, total = ComputeTotals(300, 30)
	assert.Equal(t, 50.0, fee)
	assert.Equal(t, 320.0, total)
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	_, total := ComputeTotals(100, 500)
	assert.Equal(t, 0.0, total)
}
