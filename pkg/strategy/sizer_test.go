package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizePositions_BranchArithmetic(t *testing.T) {
	// equity=10000, cash=2000, H=4, B=2:
	// portfolioValue = 8000, ideal = (8000/4 + 2000/2) / 4 = 750.
	candidates := []Candidate{
		{Symbol: "LOW", Price: 50},   // 50 < 750  -> floor(750/50) = 15
		{Symbol: "MID", Price: 500},  // 500 < 750 -> floor(750/500) = 1
	}
	allocations, unaffordable := SizePositions(10000, 2000, 4, candidates)
	assert.Empty(t, unaffordable)
	assert.Equal(t, []Allocation{
		{Symbol: "LOW", Shares: 15},
		{Symbol: "MID", Shares: 1},
	}, allocations)
}

func TestSizePositions_StretchBranch(t *testing.T) {
	// Same account: ideal = (8000/4 + 2000/1) / 2 = 2000 with B=1.
	// 2000 < 2500 < 3000 -> floor(3000/2500) = 1.
	allocations, unaffordable := SizePositions(10000, 2000, 4, []Candidate{{Symbol: "HIGH", Price: 2500}})
	assert.Empty(t, unaffordable)
	assert.Equal(t, []Allocation{{Symbol: "HIGH", Shares: 1}}, allocations)
}

func TestSizePositions_EarlyExitSkipsRemainder(t *testing.T) {
	// ideal = (8000/4 + 2000/3) / 6 = 444.44; the second candidate is
	// beyond 1.5x that, so the third gets no order despite being cheap.
	candidates := []Candidate{
		{Symbol: "OKAY", Price: 50},
		{Symbol: "RICH", Price: 2000},
		{Symbol: "CHEAP", Price: 10},
	}
	allocations, unaffordable := SizePositions(10000, 2000, 4, candidates)
	assert.Equal(t, "RICH", unaffordable)
	assert.Equal(t, []Allocation{{Symbol: "OKAY", Shares: 8}}, allocations)
}

func TestSizePositions_PriceEqualToIdealStops(t *testing.T) {
	// Neither strict inequality admits a price exactly at the ideal size.
	allocations, unaffordable := SizePositions(10000, 2000, 4, []Candidate{{Symbol: "EXACT", Price: 2000}})
	assert.Equal(t, "EXACT", unaffordable)
	assert.Empty(t, allocations)
}

func TestSizePositions_NoHoldings(t *testing.T) {
	// H=0 is treated as 1; with equity==cash the portfolio value is 0 and
	// sizing rests on cash alone: ideal = (0/1 + 5000/1) / 2 = 2500.
	allocations, unaffordable := SizePositions(5000, 5000, 0, []Candidate{{Symbol: "NEW", Price: 100}})
	assert.Empty(t, unaffordable)
	assert.Equal(t, []Allocation{{Symbol: "NEW", Shares: 25}}, allocations)
}

func TestSizePositions_NoCandidates(t *testing.T) {
	allocations, unaffordable := SizePositions(10000, 2000, 4, nil)
	assert.Empty(t, unaffordable)
	assert.Nil(t, allocations)
}
