package http

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"nordpulse/pkg/contracts/domain"
)

// Query parameter names accepted by the dashboard endpoints
const (
	ParamProductCategory       = "product_category"
	ParamComplaintCategory     = "complaint_category"
	ParamProductCategoryNone   = "product_category_none"
	ParamComplaintCategoryNone = "complaint_category_none"
	ParamStart                 = "start"
	ParamEnd                   = "end"
	ParamFormat                = "format"
)

// DashboardQuery is the decoded filter query of a dashboard request.
// Category parameters repeat; the _none flags select nothing explicitly.
type DashboardQuery struct {
	ProductCategories     []string `query:"product_category" validate:"max=100,dive,category"`
	ComplaintCategories   []string `query:"complaint_category" validate:"max=100,dive,category"`
	ProductCategoryNone   string   `query:"product_category_none" validate:"omitempty,boolean"`
	ComplaintCategoryNone string   `query:"complaint_category_none" validate:"omitempty,boolean"`
	Start                 string   `query:"start" validate:"omitempty,calendardate"`
	End                   string   `query:"end" validate:"omitempty,calendardate"`
}

// ParseDashboardQuery reads the filter parameters from a query string.
// Blank category values are kept so validation can reject them.
func ParseDashboardQuery(values url.Values) DashboardQuery {
	return DashboardQuery{
		ProductCategories:     values[ParamProductCategory],
		ComplaintCategories:   values[ParamComplaintCategory],
		ProductCategoryNone:   strings.TrimSpace(values.Get(ParamProductCategoryNone)),
		ComplaintCategoryNone: strings.TrimSpace(values.Get(ParamComplaintCategoryNone)),
		Start:                 strings.TrimSpace(values.Get(ParamStart)),
		End:                   strings.TrimSpace(values.Get(ParamEnd)),
	}
}

// Criteria converts a validated query into filter criteria.
// Call it only after validation succeeded.
func (q DashboardQuery) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		ProductCategories:   selection(q.ProductCategories, q.ProductCategoryNone),
		ComplaintCategories: selection(q.ComplaintCategories, q.ComplaintCategoryNone),
		DateRange: domain.DateRange{
			Start: parseDay(q.Start),
			End:   parseDay(q.End),
		},
	}
}

// selection maps repeated values and the none flag onto a Selection.
// The flag wins; absent values mean the default of everything.
func selection(values []string, none string) domain.Selection {
	if explicitNone, _ := strconv.ParseBool(none); explicitNone {
		return domain.Only()
	}
	if len(values) == 0 {
		return domain.All()
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		trimmed = append(trimmed, strings.TrimSpace(v))
	}
	return domain.Only(trimmed...)
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
