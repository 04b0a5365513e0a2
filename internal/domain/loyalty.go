package domain

// LoyaltyAccount is the per-user points ledger. Points accumulates every point
// ever earned; TotalPointsLeft is the redeemable balance and never goes negative.
type LoyaltyAccount struct {
	Username        string
	Points          int64
	TotalPointsLeft int64
}
