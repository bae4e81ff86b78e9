// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "math"

// eloExpected returns the winner's expected score against the loser's
// pre-vote rating: E_w = 1 / (1 + 10^((R_l - R_w)/400)).
func eloExpected(winnerRating, loserRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (loserRating-winnerRating)/400.0))
}

// eloDeltas computes the rating changes for a recorded (winner, loser) pair.
// Winner gains k*(1-E_w), loser drops by the same amount (E_l = 1-E_w, so
// k*(0-E_l) = -k*(1-E_w)). Both deltas come from the same pre-vote ratings.
func eloDeltas(winnerRating, loserRating, k float64) (winnerDelta, loserDelta float64) {
	expected := eloExpected(winnerRating, loserRating)
	winnerDelta = k * (1 - expected)
	loserDelta = -winnerDelta
	return winnerDelta, loserDelta
}
