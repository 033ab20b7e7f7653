package reports

import "time"

// Query narrows the report window and optional dimensions.
type Query struct {
	DateFrom    time.Time
	DateTo      time.Time
	Segment     string
	Salesperson string
	City        string
}

// GroupStat is one bucket of a group-by dimension.
type GroupStat struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Percent float64 `json:"percent"`
}

// RecentTransaction is one entry in the chronological activity feed.
type RecentTransaction struct {
	Date         time.Time `json:"date"`
	Type         string    `json:"type"`
	Number       string    `json:"number"`
	Counterparty string    `json:"counterparty"`
	Segment      string    `json:"segment"`
	Salesperson  string    `json:"salesperson"`
	Value        float64   `json:"value"`
	Profit       float64   `json:"profit"`
}

// Report is the computed management view. It is derived on demand from the
// underlying documents and never persisted.
type Report struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCost     float64 `json:"total_cost"`
	GrossProfit   float64 `json:"gross_profit"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`

	OrderCount  int     `json:"order_count"`
	TenderCount int     `json:"tender_count"`
	WinRate     float64 `json:"win_rate"`

	BySegment     map[string]GroupStat `json:"by_segment"`
	BySalesperson map[string]GroupStat `json:"by_salesperson"`
	ByCity        map[string]GroupStat `json:"by_city"`

	RecentTransactions []RecentTransaction `json:"recent_transactions"`
}

// FilterOptions lists the distinct dimension values the UI can filter on.
type FilterOptions struct {
	Segments    []string `json:"segments"`
	Salespeople []string `json:"salespeople"`
	Cities      []string `json:"cities"`
}

// UnspecifiedKey buckets records that lack a value for a dimension, so
// grouped revenue still reconciles with the filtered total.
const UnspecifiedKey = "unspecified"
