package domain

import "time"

// DefaultTotalSystemComplaints is the complaint total across all channels used
// as the reference denominator for the complaint share KPI
const DefaultTotalSystemComplaints = 344

// KPIs holds the scalar dashboard indicators
type KPIs struct {
	TransactionCount      int     `json:"transaction_count"`
	TotalRevenue          float64 `json:"total_revenue"`
	ReturnCount           int     `json:"return_count"`
	ReturnRate            float64 `json:"return_rate"`
	LinkedComplaints      int     `json:"linked_complaints"`
	TotalSystemComplaints int     `json:"total_system_complaints"`
	ComplaintShare        float64 `json:"complaint_share"`
}

// WeeklyPoint is one bucket of the revenue versus returns time series
type WeeklyPoint struct {
	WeekStart time.Time `json:"week_start"`
	Revenue   float64   `json:"revenue"`
	Returns   int       `json:"returns"`
}

// CategoryReturnRate is the return rate of one product category
type CategoryReturnRate struct {
	Category     string  `json:"category"`
	Transactions int     `json:"transactions"`
	Returns      int     `json:"returns"`
	ReturnRate   float64 `json:"return_rate"`
}

// LabelCount is the number of records carrying a complaint label
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ProductSummaryRow is one row of the per-product summary table
type ProductSummaryRow struct {
	ProductName string `json:"product_name"`
	Sales       int    `json:"sales"`
	Returns     int    `json:"returns"`
	Complaints  int    `json:"complaints"`
}

// Dashboard bundles every output of one pipeline run
type Dashboard struct {
	Source              string               `json:"source"`
	DatasetLoadedAt     time.Time            `json:"dataset_loaded_at"`
	DatasetSize         int                  `json:"dataset_size"`
	FilteredSize        int                  `json:"filtered_size"`
	Criteria            FilterCriteria       `json:"criteria"`
	KPIs                KPIs                 `json:"kpis"`
	WeeklySeries        []WeeklyPoint        `json:"weekly_series"`
	CategoryReturnRates []CategoryReturnRate `json:"category_return_rates"`
	ComplaintFrequency  []LabelCount         `json:"complaint_frequency"`
	ProductSummary      []ProductSummaryRow  `json:"product_summary"`
}

// FilterOptions lists the values a client can pick from, with the defaults the
// dashboard starts with
type FilterOptions struct {
	ProductCategories   []string   `json:"product_categories"`
	ComplaintCategories []string   `json:"complaint_categories"`
	MinDate             *time.Time `json:"min_date,omitempty"`
	MaxDate             *time.Time `json:"max_date,omitempty"`
}
