package sales

// PricedLine carries the effective sides of a line after the customization
// charge has been attributed, plus the resulting profit.
type PricedLine struct {
	EffectiveCost float64
	EffectiveSale float64
	Profit        float64
}

// PriceLine attributes the customization charge of a single line and computes
// its profit. A passed-through customization is billed to the customer (sale
// side); an absorbed one raises the internal cost. The per-unit misc expense
// always reduces profit without touching either side.
func PriceLine(it LineItem) PricedLine {
	effCost := it.UnitCost
	effSale := it.UnitSale
	if it.Customized {
		if it.PassThrough {
			effSale += it.CustomValue
		} else {
			effCost += it.CustomValue
		}
	}
	return PricedLine{
		EffectiveCost: effCost,
		EffectiveSale: effSale,
		Profit:        it.Quantity * (effSale - effCost - it.MiscExpense),
	}
}

// Totals are the document-level figures derived from a line item snapshot.
type Totals struct {
	Cost        float64 `json:"cost"`
	Revenue     float64 `json:"revenue"`
	GrossProfit float64 `json:"gross_profit"`
	NetTotal    float64 `json:"net_total"`
}

// Aggregate computes document totals from an immutable snapshot. It is a pure
// function: no running balance exists anywhere, every read recomputes from
// the lines, so two calls with the same inputs yield the same Totals.
//
// The misc charge follows the same two-sided rule as line customization:
// passed through it raises revenue, absorbed it raises cost. Per-unit misc
// expenses reduce profit but are not merchandise cost, so they stay out of
// Cost. Freight is owed by the customer and only ever moves the net total,
// never cost or profit. Discount is a flat reduction of the net total
// (quotes only; orders pass 0).
func Aggregate(items []LineItem, freight float64, misc MiscCharge, discount float64) Totals {
	var t Totals
	var lineExpenses float64
	for _, it := range items {
		p := PriceLine(it)
		t.Cost += p.EffectiveCost * it.Quantity
		t.Revenue += p.EffectiveSale * it.Quantity
		lineExpenses += it.MiscExpense * it.Quantity
	}
	if misc.PassThrough {
		t.Revenue += misc.Amount
	} else {
		t.Cost += misc.Amount
	}
	t.GrossProfit = t.Revenue - t.Cost - lineExpenses
	t.NetTotal = t.Revenue + freight - discount
	return t
}

// priceItems fills the derived LineProfit on each item and returns the
// document totals in one pass over a fresh copy of the slice.
func priceItems(items []LineItem, freight float64, misc MiscCharge, discount float64) ([]LineItem, Totals) {
	out := cloneItems(items)
	for i := range out {
		out[i].LineProfit = PriceLine(out[i]).Profit
	}
	return out, Aggregate(out, freight, misc, discount)
}
