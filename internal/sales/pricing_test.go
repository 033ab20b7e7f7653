package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLine(t *testing.T) {
	tests := []struct {
		name       string
		item       LineItem
		wantCost   float64
		wantSale   float64
		wantProfit float64
	}{
		{
			name:       "plain line",
			item:       LineItem{Quantity: 10, UnitCost: 50, UnitSale: 100},
			wantCost:   50,
			wantSale:   100,
			wantProfit: 500,
		},
		{
			name: "customization passed through to customer",
			item: LineItem{
				Quantity: 2, UnitCost: 10, UnitSale: 20, MiscExpense: 1,
				Customized: true, CustomValue: 5, PassThrough: true,
			},
			wantCost:   10,
			wantSale:   25,
			wantProfit: 28,
		},
		{
			name: "customization absorbed internally",
			item: LineItem{
				Quantity: 2, UnitCost: 10, UnitSale: 20, MiscExpense: 1,
				Customized: true, CustomValue: 5, PassThrough: false,
			},
			wantCost:   15,
			wantSale:   20,
			wantProfit: 8,
		},
		{
			name: "customization flag off ignores custom value",
			item: LineItem{
				Quantity: 3, UnitCost: 10, UnitSale: 20,
				Customized: false, CustomValue: 99, PassThrough: true,
			},
			wantCost:   10,
			wantSale:   20,
			wantProfit: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceLine(tt.item)
			assert.InDelta(t, tt.wantCost, got.EffectiveCost, 1e-9)
			assert.InDelta(t, tt.wantSale, got.EffectiveSale, 1e-9)
			assert.InDelta(t, tt.wantProfit, got.Profit, 1e-9)
		})
	}
}

// Flipping pass_through moves the customization value from one side to the
// other: the sale-cost margin shifts by exactly 2x the custom value while the
// line profit shifts by quantity times that.
func TestPriceLinePassThroughSymmetry(t *testing.T) {
	base := LineItem{
		Quantity: 4, UnitCost: 30, UnitSale: 45, MiscExpense: 2,
		Customized: true, CustomValue: 7,
	}

	billed := base
	billed.PassThrough = true
	absorbed := base
	absorbed.PassThrough = false

	pb := PriceLine(billed)
	pa := PriceLine(absorbed)

	marginBilled := pb.EffectiveSale - pb.EffectiveCost
	marginAbsorbed := pa.EffectiveSale - pa.EffectiveCost
	assert.InDelta(t, 2*base.CustomValue, marginBilled-marginAbsorbed, 1e-9)
	assert.InDelta(t, 2*base.CustomValue*base.Quantity, pb.Profit-pa.Profit, 1e-9)
}

func TestAggregateOrderScenario(t *testing.T) {
	items := []LineItem{{
		Quantity: 2, UnitCost: 10, UnitSale: 20, MiscExpense: 1,
		Customized: true, CustomValue: 5, PassThrough: true,
	}}

	totals := Aggregate(items, 0, MiscCharge{}, 0)

	assert.InDelta(t, 50.0, totals.Revenue, 1e-9)
	assert.InDelta(t, 20.0, totals.Cost, 1e-9)
	assert.InDelta(t, 28.0, totals.GrossProfit, 1e-9)
	assert.InDelta(t, 50.0, totals.NetTotal, 1e-9)
}

func TestAggregateMiscChargeAttribution(t *testing.T) {
	items := []LineItem{{Quantity: 1, UnitCost: 100, UnitSale: 150}}

	passed := Aggregate(items, 0, MiscCharge{Amount: 25, PassThrough: true}, 0)
	absorbed := Aggregate(items, 0, MiscCharge{Amount: 25, PassThrough: false}, 0)

	assert.InDelta(t, 175.0, passed.Revenue, 1e-9)
	assert.InDelta(t, 100.0, passed.Cost, 1e-9)
	assert.InDelta(t, 75.0, passed.GrossProfit, 1e-9)

	assert.InDelta(t, 150.0, absorbed.Revenue, 1e-9)
	assert.InDelta(t, 125.0, absorbed.Cost, 1e-9)
	assert.InDelta(t, 25.0, absorbed.GrossProfit, 1e-9)
}

func TestAggregateFreightOnlyMovesNetTotal(t *testing.T) {
	items := []LineItem{{Quantity: 2, UnitCost: 10, UnitSale: 20, MiscExpense: 1, Customized: true, CustomValue: 5, PassThrough: true}}

	without := Aggregate(items, 0, MiscCharge{}, 0)
	with := Aggregate(items, 35, MiscCharge{}, 0)

	assert.InDelta(t, without.Cost, with.Cost, 1e-9)
	assert.InDelta(t, without.Revenue, with.Revenue, 1e-9)
	assert.InDelta(t, without.GrossProfit, with.GrossProfit, 1e-9)
	assert.InDelta(t, without.NetTotal+35, with.NetTotal, 1e-9)
}

func TestAggregateQuoteDiscountScenario(t *testing.T) {
	items := []LineItem{{Quantity: 10, UnitCost: 60, UnitSale: 100}}

	totals := Aggregate(items, 50, MiscCharge{}, 100)

	assert.InDelta(t, 1000.0, totals.Revenue, 1e-9)
	assert.InDelta(t, 950.0, totals.NetTotal, 1e-9)
}

// The aggregator is a pure function of its inputs: no hidden accumulation
// survives between calls.
func TestAggregateIdempotent(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, UnitCost: 12.5, UnitSale: 19.9, MiscExpense: 0.4},
		{Quantity: 1, UnitCost: 80, UnitSale: 140, Customized: true, CustomValue: 15, PassThrough: false},
	}
	misc := MiscCharge{Amount: 18, Description: "setup", PassThrough: true}

	first := Aggregate(items, 12, misc, 5)
	second := Aggregate(items, 12, misc, 5)

	require.Equal(t, first, second)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil, 0, MiscCharge{}, 0)
	assert.Zero(t, totals.Cost)
	assert.Zero(t, totals.Revenue)
	assert.Zero(t, totals.GrossProfit)
	assert.Zero(t, totals.NetTotal)
}
