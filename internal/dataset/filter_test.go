package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{
			OrderID:     "1",
			Date:        dayPtr("2023-01-05"),
			RegionName:  strPtr("North"),
			ProductName: strPtr("Widget"),
			IsRetail:    boolPtr(true),
			Revenue:     10,
		},
		{
			OrderID:     "2",
			Date:        dayPtr("2023-02-10"),
			RegionName:  strPtr("South"),
			ProductName: strPtr("Gadget"),
			IsRetail:    boolPtr(false),
			Revenue:     20,
		},
		{
			OrderID: "3",
			Revenue: 30,
		},
	}
}

func TestApplyNoPredicatesReturnsEverything(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, Filter{})
	assert.Equal(t, records, got)
}

func TestApplyDateBoundsAreInclusive(t *testing.T) {
	records := sampleRecords()

	got := Apply(records, Filter{Start: dayPtr("2023-01-05"), End: dayPtr("2023-01-05")})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].OrderID)

	// rows without a Date drop out once a bound is active
	got = Apply(records, Filter{Start: dayPtr("2023-01-01")})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].OrderID)
	assert.Equal(t, "2", got[1].OrderID)
}

func TestApplyAllSentinelDisablesSelection(t *testing.T) {
	records := sampleRecords()

	got := Apply(records, Filter{Regions: []string{"North", FilterAll}})
	assert.Len(t, got, 3)

	got = Apply(records, Filter{Regions: []string{"North"}})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].OrderID)

	// empty and blank-only selections behave like All
	got = Apply(records, Filter{Regions: []string{}})
	assert.Len(t, got, 3)
	got = Apply(records, Filter{Regions: []string{"  "}})
	assert.Len(t, got, 3)
}

func TestApplyProductSelection(t *testing.T) {
	records := sampleRecords()

	got := Apply(records, Filter{Products: []string{"Gadget"}})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].OrderID)
}

func TestApplyChannel(t *testing.T) {
	records := sampleRecords()

	got := Apply(records, Filter{Channel: ChannelRetail})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].OrderID)

	got = Apply(records, Filter{Channel: ChannelWholesale})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].OrderID)

	got = Apply(records, Filter{Channel: ChannelAll})
	assert.Len(t, got, 3)
}

func TestApplyPreservesOrderAndInput(t *testing.T) {
	records := sampleRecords()
	snapshot := make([]Record, len(records))
	copy(snapshot, records)

	got := Apply(records, Filter{Start: dayPtr("2023-01-01"), End: dayPtr("2023-12-31")})
	require.Len(t, got, 2)
	assert.True(t, got[0].Date.Before(*got[1].Date))

	assert.Equal(t, snapshot, records)
}
