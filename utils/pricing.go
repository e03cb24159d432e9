package utils

// ShippingFee returns the delivery surcharge for an order subtotal. Orders at
// or above the free-shipping threshold ship free; everything below pays the
// flat fee. Every totals computation in the codebase goes through here so the
// threshold rule cannot drift between checkout, coupons and payments.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// ComputeTotals derives the shipping fee and payable total for a subtotal and
// an already-validated coupon discount. The total never goes negative.
func ComputeTotals(subtotal, discount float64) (shippingFee, total float64) {
	shippingFee = ShippingFee(subtotal)
	total = subtotal + shippingFee - discount
	if total < 0 {
		total = 0
	}
	return shippingFee, total
}
