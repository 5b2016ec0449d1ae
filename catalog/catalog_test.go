package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestStateTablesCoverEveryState(t *testing.T) {
	for _, st := range States {
		assert.NotEmpty(t, StateCities[st], "state %s has no cities", st)
		assert.Contains(t, StateZones, st, "state %s has no zone", st)
		assert.Contains(t, StatePinPrefix, st, "state %s has no pin prefix", st)
	}
}

func TestWeightTableLengths(t *testing.T) {
	assert.Len(t, PaymentWeights, len(PaymentMethods))
	assert.Len(t, OrderWeights, len(OrderStatuses))
	assert.Len(t, SegmentWeights, len(Segments))
	assert.Len(t, AgeWeights, len(AgeGroups))
	assert.Len(t, CustomerStatusW, len(CustomerStatuses))
	assert.Len(t, TicketPriorityW, len(TicketPriorities))
	assert.Len(t, TicketStatusW, len(TicketStatuses))
	assert.Len(t, RefundWeights, len(RefundStatuses))
}

func TestSegmentMultiplierCoversSegments(t *testing.T) {
	for _, seg := range Segments {
		assert.Contains(t, SegmentMultiplier, seg)
	}
}

func TestTierForBoundaries(t *testing.T) {
	cases := []struct {
		spend float64
		want  string
	}{
		{0, "Bronze"},
		{7999.99, "Bronze"},
		{8000, "Silver"},
		{19999.99, "Silver"},
		{20000, "Gold"},
		{49999.99, "Gold"},
		{50000, "Platinum"},
		{1000000, "Platinum"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.spend), "spend %.2f", tc.spend)
	}
}

func TestMonthWeightDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, 2.8, MonthWeight(time.October))
	assert.Equal(t, 1.0, MonthWeight(time.February))
	assert.Equal(t, 1.0, MonthWeight(time.June))
}

func TestResolutionHoursPerPriority(t *testing.T) {
	for _, prio := range TicketPriorities {
		rng, ok := ResolutionHours[prio]
		require.True(t, ok, "priority %s missing", prio)
		assert.Less(t, rng[0], rng[1], "priority %s range inverted", prio)
	}
	// Critical tickets carry the tightest SLA.
	assert.Less(t, ResolutionHours["Critical"][1], ResolutionHours["Low"][1])
}
