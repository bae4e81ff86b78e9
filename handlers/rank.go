// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "math"

// Wilson confidence level: z for a 95% two-sided interval.
const wilsonZ = 1.96

// Blend weights and Elo normalization window for RankScore.
const (
	wilsonWeight = 0.7
	eloWeight    = 0.3
	eloFloor     = 800.0
	eloSpan      = 1600.0
)

// wilsonLower computes the lower bound of the Wilson score confidence
// interval for the binomial proportion wins/(wins+losses). It penalizes
// small samples: 1-0 scores well below 9-1 even though the raw win rate
// is higher.
func wilsonLower(wins, losses int) float64 {
	n := float64(wins + losses)
	if n == 0 {
		return 0.0
	}

	p := float64(wins) / n
	z2 := wilsonZ * wilsonZ

	center := p + z2/(2*n)
	spread := wilsonZ * math.Sqrt(p*(1-p)/n+z2/(4*n*n))
	return (center - spread) / (1 + z2/n)
}

// normalizedElo maps a rating into [0,1] over the 800..2400 window.
func normalizedElo(elo float64) float64 {
	norm := (elo - eloFloor) / eloSpan
	return math.Max(0.0, math.Min(1.0, norm))
}

// RankScore is the single confidence-adjusted score shared by every
// leaderboard call site: round(1000 * (0.7*wilson + 0.3*normalizedElo)).
func RankScore(wins, losses int, elo float64) int {
	blend := wilsonWeight*wilsonLower(wins, losses) + eloWeight*normalizedElo(elo)
	return int(math.Round(1000 * blend))
}
