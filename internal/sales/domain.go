package sales

import "time"

// OrderStatus is the operational stage of a sales order.
type OrderStatus string

const (
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusSentToSupplier  OrderStatus = "sent_to_supplier"
	OrderStatusReadyInternally OrderStatus = "ready_internally"
	OrderStatusInEngraving     OrderStatus = "in_engraving"
	OrderStatusPickupRequested OrderStatus = "pickup_requested"
	OrderStatusFinished        OrderStatus = "finished"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:         {},
	OrderStatusSentToSupplier:  {},
	OrderStatusReadyInternally: {},
	OrderStatusInEngraving:     {},
	OrderStatusPickupRequested: {},
	OrderStatusFinished:        {},
}

// Valid reports whether the label belongs to the order status set.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// CanTransitionTo reports whether the jump to next is allowed. Every valid
// label is reachable from every other, including backward: returns and
// corrections are routine, so the sequence implied by the labels is display
// order only and is intentionally not enforced.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return next.Valid()
}

// QuoteStatus is the lifecycle stage of a price quote.
type QuoteStatus string

const (
	QuoteStatusOpen      QuoteStatus = "open"
	QuoteStatusConverted QuoteStatus = "converted"
	QuoteStatusExpired   QuoteStatus = "expired"
)

// Valid reports whether the label belongs to the quote status set.
func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusOpen, QuoteStatusConverted, QuoteStatusExpired:
		return true
	}
	return false
}

// Channel is the sales segment a document belongs to.
type Channel string

const (
	ChannelEndConsumer  Channel = "end_consumer"
	ChannelResale       Channel = "resale"
	ChannelPublicTender Channel = "public_tender"
	ChannelPromotional  Channel = "promotional"
)

// Valid reports whether the label belongs to the channel set.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEndConsumer, ChannelResale, ChannelPublicTender, ChannelPromotional:
		return true
	}
	return false
}

// LineItem is one product line on an order or quote. Product fields are
// snapshots taken at entry time so later catalogue edits never move a
// document's figures.
type LineItem struct {
	ProductID          int64   `json:"product_id"`
	ProductCode        string  `json:"product_code"`
	ProductDescription string  `json:"product_description"`
	Quantity           float64 `json:"quantity"`
	UnitCost           float64 `json:"unit_cost"`
	UnitSale           float64 `json:"unit_sale"`
	MiscExpense        float64 `json:"misc_expense"`
	Customized         bool    `json:"customized"`
	CustomizationType  string  `json:"customization_type,omitempty"`
	CustomValue        float64 `json:"custom_value"`
	PassThrough        bool    `json:"pass_through"`
	LineProfit         float64 `json:"line_profit"`
}

// MiscCharge is a single document-level extra charge with its attribution rule.
type MiscCharge struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	PassThrough bool    `json:"pass_through"`
}

// Order is a confirmed sale.
type Order struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	CreatedAt     time.Time   `json:"created_at"`
	CustomerID    int64       `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	Salesperson   string      `json:"salesperson,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Channel       Channel     `json:"channel"`
	Items         []LineItem  `json:"items"`
	Freight       float64     `json:"freight"`
	Misc          MiscCharge  `json:"misc"`
	Status        OrderStatus `json:"status"`
	Totals        Totals      `json:"totals"`
}

// Quote is a price proposal that can later be converted into an order.
type Quote struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	CreatedAt     time.Time   `json:"created_at"`
	CustomerID    int64       `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	PaymentMethod string      `json:"payment_method"`
	DeliveryTerm  string      `json:"delivery_term,omitempty"`
	FreightPayer  string      `json:"freight_payer,omitempty"`
	Remarks       string      `json:"remarks,omitempty"`
	ValidityDays  int         `json:"validity_days"`
	Items         []LineItem  `json:"items"`
	Freight       float64     `json:"freight"`
	Discount      float64     `json:"discount"`
	Status        QuoteStatus `json:"status"`
	Totals        Totals      `json:"totals"`
}

// ExpiresAt returns the moment the quote stops being valid.
func (q *Quote) ExpiresAt() time.Time {
	return q.CreatedAt.AddDate(0, 0, q.ValidityDays)
}

// DefaultQuoteRemarks is printed on every quote unless the author overrides it.
const DefaultQuoteRemarks = "Product subject to stock availability at the moment the order is closed, due to rotating stock."

// cloneItems copies a line item collection. LineItem holds no reference
// types, so a slice copy is a full value copy; converted documents must not
// share mutable structure with their source.
func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
