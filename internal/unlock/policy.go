// Package unlock holds the pure decision functions for gating content on the
// star economy. Nothing here mutates state; callers evaluate against a fresh
// progress snapshot each time.
package unlock

import "pairplay/internal/catalog"

// CategoryUnlocked gates on the lifetime earned watermark, never the
// spendable balance, so purchases cannot re-lock a category.
func CategoryUnlocked(c catalog.Category, lifetimeStars int) bool {
	return lifetimeStars >= c.UnlockRequirement
}

// Stars grades a completed round by move count. Thresholds are non-decreasing
// (threeStars < twoStars < oneStar) by construction of level data; the
// function does not validate that.
func Stars(moves int, t catalog.StarThresholds) int {
	switch {
	case moves <= t.ThreeStars:
		return 3
	case moves <= t.TwoStars:
		return 2
	case moves <= t.OneStar:
		return 1
	default:
		return 0
	}
}

// CanAfford is the shop-side affordability check against the wallet.
func CanAfford(cost, balance int) bool {
	return cost <= balance
}
