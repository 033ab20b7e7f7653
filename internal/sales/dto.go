package sales

import "time"

// LineItemRequest is one line of an incoming order or quote payload.
type LineItemRequest struct {
	ProductID          int64   `json:"product_id" validate:"required"`
	ProductCode        string  `json:"product_code"`
	ProductDescription string  `json:"product_description"`
	Quantity           float64 `json:"quantity" validate:"required,gt=0"`
	UnitCost           float64 `json:"unit_cost" validate:"gte=0"`
	UnitSale           float64 `json:"unit_sale" validate:"gte=0"`
	MiscExpense        float64 `json:"misc_expense" validate:"gte=0"`
	Customized         bool    `json:"customized"`
	CustomizationType  string  `json:"customization_type"`
	CustomValue        float64 `json:"custom_value" validate:"gte=0"`
	PassThrough        bool    `json:"pass_through"`
}

func (r LineItemRequest) toItem() LineItem {
	return LineItem{
		ProductID:          r.ProductID,
		ProductCode:        r.ProductCode,
		ProductDescription: r.ProductDescription,
		Quantity:           r.Quantity,
		UnitCost:           r.UnitCost,
		UnitSale:           r.UnitSale,
		MiscExpense:        r.MiscExpense,
		Customized:         r.Customized,
		CustomizationType:  r.CustomizationType,
		CustomValue:        r.CustomValue,
		PassThrough:        r.PassThrough,
	}
}

func toItems(reqs []LineItemRequest) []LineItem {
	items := make([]LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, r.toItem())
	}
	return items
}

// CreateOrderRequest is the payload for creating an order.
type CreateOrderRequest struct {
	CustomerID      int64             `json:"customer_id" validate:"required"`
	Salesperson     string            `json:"salesperson"`
	PaymentMethod   string            `json:"payment_method" validate:"required"`
	Channel         Channel           `json:"channel" validate:"required,oneof=end_consumer resale public_tender promotional"`
	Items           []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Freight         float64           `json:"freight" validate:"gte=0"`
	MiscAmount      float64           `json:"misc_amount" validate:"gte=0"`
	MiscDescription string            `json:"misc_description"`
	MiscPassThrough bool              `json:"misc_pass_through"`
}

// UpdateOrderRequest replaces the editable fields of an order. Orders stay
// editable in every status; totals are recomputed from the new snapshot.
type UpdateOrderRequest struct {
	Salesperson     *string            `json:"salesperson"`
	PaymentMethod   *string            `json:"payment_method"`
	Channel         *Channel           `json:"channel" validate:"omitempty,oneof=end_consumer resale public_tender promotional"`
	Items           *[]LineItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Freight         *float64           `json:"freight" validate:"omitempty,gte=0"`
	MiscAmount      *float64           `json:"misc_amount" validate:"omitempty,gte=0"`
	MiscDescription *string            `json:"misc_description"`
	MiscPassThrough *bool              `json:"misc_pass_through"`
}

// ListOrdersRequest filters the order listing.
type ListOrdersRequest struct {
	Status   *OrderStatus
	Channel  *Channel
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// CreateQuoteRequest is the payload for creating a quote.
type CreateQuoteRequest struct {
	CustomerID    int64             `json:"customer_id" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	DeliveryTerm  string            `json:"delivery_term"`
	FreightPayer  string            `json:"freight_payer"`
	Remarks       *string           `json:"remarks"`
	ValidityDays  int               `json:"validity_days" validate:"required,gt=0"`
	Items         []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Freight       float64           `json:"freight" validate:"gte=0"`
	Discount      float64           `json:"discount" validate:"gte=0"`
}

// UpdateQuoteRequest replaces the editable fields of an open quote.
type UpdateQuoteRequest struct {
	PaymentMethod *string            `json:"payment_method"`
	DeliveryTerm  *string            `json:"delivery_term"`
	FreightPayer  *string            `json:"freight_payer"`
	Remarks       *string            `json:"remarks"`
	ValidityDays  *int               `json:"validity_days" validate:"omitempty,gt=0"`
	Items         *[]LineItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Freight       *float64           `json:"freight" validate:"omitempty,gte=0"`
	Discount      *float64           `json:"discount" validate:"omitempty,gte=0"`
}

// ListQuotesRequest filters the quote listing.
type ListQuotesRequest struct {
	Status   *QuoteStatus
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// ConvertQuoteRequest names the salesperson closing the sale and the channel
// the resulting order is booked under.
type ConvertQuoteRequest struct {
	Salesperson string  `json:"salesperson"`
	Channel     Channel `json:"channel" validate:"omitempty,oneof=end_consumer resale public_tender promotional"`
}
