package booking

// Pricing holds the loyalty economics of a purchase. All amounts are cents.
type Pricing struct {
	// MinRedeemPoints is the smallest redemption the workflow accepts.
	MinRedeemPoints int64
	// PointValueCents is the discount value of one redeemed point.
	PointValueCents int64
	// EarnRateCents is how many cents spent earn one point.
	EarnRateCents int64
}

func DefaultPricing() Pricing {
	return Pricing{
		MinRedeemPoints: 50,
		PointValueCents: 10,
		EarnRateCents:   1000,
	}
}

// Quote is the computed outcome of one purchase.
type Quote struct {
	DiscountCents   int64
	FinalPriceCents int64
	PointsEarned    int64
}

// Quote prices a purchase: the discount is pointsToRedeem * PointValueCents,
// the final price never drops below zero, and points earned truncate toward zero.
func (p Pricing) Quote(priceCents, pointsToRedeem int64) Quote {
	discount := pointsToRedeem * p.PointValueCents
	final := priceCents - discount
	if final < 0 {
		final = 0
	}
	return Quote{
		DiscountCents:   discount,
		FinalPriceCents: final,
		PointsEarned:    final / p.EarnRateCents,
	}
}
