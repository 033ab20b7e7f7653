package sales

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Document figures are printed in Brazilian format on receipts.
var brl = message.NewPrinter(language.BrazilianPortuguese)

func formatBRL(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

// ReceiptLine is one printable row of a document.
type ReceiptLine struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitSale    string  `json:"unit_sale"`
	LineTotal   string  `json:"line_total"`
}

// ReceiptView is the printable summary handed to the document-rendering
// collaborator. Monetary values arrive pre-formatted.
type ReceiptView struct {
	Kind         string        `json:"kind"`
	Number       string        `json:"number"`
	IssuedAt     time.Time     `json:"issued_at"`
	CustomerName string        `json:"customer_name"`
	Salesperson  string        `json:"salesperson,omitempty"`
	Lines        []ReceiptLine `json:"lines"`
	Freight      string        `json:"freight"`
	Discount     string        `json:"discount,omitempty"`
	Remarks      string        `json:"remarks,omitempty"`
	Cost         string        `json:"cost"`
	Revenue      string        `json:"revenue"`
	GrossProfit  string        `json:"gross_profit"`
	NetTotal     string        `json:"net_total"`
}

func receiptLines(items []LineItem) []ReceiptLine {
	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		p := PriceLine(it)
		lines = append(lines, ReceiptLine{
			Code:        it.ProductCode,
			Description: it.ProductDescription,
			Quantity:    it.Quantity,
			UnitSale:    formatBRL(p.EffectiveSale),
			LineTotal:   formatBRL(p.EffectiveSale * it.Quantity),
		})
	}
	return lines
}

// BuildOrderReceipt renders the printable view of an order.
func BuildOrderReceipt(o *Order) ReceiptView {
	return ReceiptView{
		Kind:         "order",
		Number:       o.Number,
		IssuedAt:     o.CreatedAt,
		CustomerName: o.CustomerName,
		Salesperson:  o.Salesperson,
		Lines:        receiptLines(o.Items),
		Freight:      formatBRL(o.Freight),
		Cost:         formatBRL(o.Totals.Cost),
		Revenue:      formatBRL(o.Totals.Revenue),
		GrossProfit:  formatBRL(o.Totals.GrossProfit),
		NetTotal:     formatBRL(o.Totals.NetTotal),
	}
}

// BuildQuoteReceipt renders the printable view of a quote.
func BuildQuoteReceipt(q *Quote) ReceiptView {
	return ReceiptView{
		Kind:         "quote",
		Number:       q.Number,
		IssuedAt:     q.CreatedAt,
		CustomerName: q.CustomerName,
		Lines:        receiptLines(q.Items),
		Freight:      formatBRL(q.Freight),
		Discount:     formatBRL(q.Discount),
		Remarks:      q.Remarks,
		Cost:         formatBRL(q.Totals.Cost),
		Revenue:      formatBRL(q.Totals.Revenue),
		GrossProfit:  formatBRL(q.Totals.GrossProfit),
		NetTotal:     formatBRL(q.Totals.NetTotal),
	}
}
