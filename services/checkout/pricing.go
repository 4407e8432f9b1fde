package checkout

// subtotal sums the line totals of the resolved item set.
func subtotal(items []ItemLine) int64 {
	var total int64
	for _, line := range items {
		total += line.PriceInCents * int64(line.Quantity)
	}
	return total
}

// totalPayable adds the configured delivery charge and subtracts the
// configured discount. A discount larger than the rest clamps to zero.
func totalPayable(subtotalInCents int64, deliveryChargeInCents int64, discountInCents int64) int64 {
	total := subtotalInCents + deliveryChargeInCents - discountInCents
	if total < 0 {
		return 0
	}
	return total
}

// recomputeTotals must run on every mutation of the item set.
func (s *CheckoutSession) recomputeTotals() {
	s.SubtotalInCents = subtotal(s.Items)
	s.TotalPayableInCents = totalPayable(s.SubtotalInCents, s.DeliveryChargeInCents, s.DiscountInCents)
}
