package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nordpulse/pkg/contracts/domain"
)

func TestCalculateKPIs(t *testing.T) {
	kpis := CalculateKPIs(salesRecords(), domain.DefaultTotalSystemComplaints)

	assert.Equal(t, 7, kpis.TransactionCount)
	assert.InDelta(t, 465.0, kpis.TotalRevenue, 1e-9)
	assert.Equal(t, 3, kpis.ReturnCount)
	assert.InDelta(t, 3.0/7.0*100, kpis.ReturnRate, 1e-9)
	assert.Equal(t, 8, kpis.LinkedComplaints)
	assert.Equal(t, 344, kpis.TotalSystemComplaints)
	assert.InDelta(t, 8.0/344.0*100, kpis.ComplaintShare, 1e-9)
}

func TestCalculateKPIs_EmptyView(t *testing.T) {
	kpis := CalculateKPIs(nil, domain.DefaultTotalSystemComplaints)

	assert.Zero(t, kpis.TransactionCount)
	assert.Zero(t, kpis.TotalRevenue)
	assert.Zero(t, kpis.ReturnRate)
	assert.Zero(t, kpis.LinkedComplaints)
	assert.Equal(t, 344, kpis.TotalSystemComplaints)
}

func TestCalculateKPIs_ZeroSystemTotal(t *testing.T) {
	kpis := CalculateKPIs(salesRecords(), 0)
	assert.Zero(t, kpis.ComplaintShare)
}

func TestCalculateKPIs_ReturnRateBounds(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.Record
		want    float64
	}{
		{"all returns", []domain.Record{
			rec("R1", "2024-01-01", "Hub", "A", domain.StatusProcessed, domain.NoComplaintsSentinel, 1, 0),
			rec("R2", "2024-01-01", "Hub", "A", domain.StatusProcessed, domain.NoComplaintsSentinel, 1, 0),
		}, 100},
		{"no returns", []domain.Record{
			rec("R1", "2024-01-01", "Hub", "A", "Pending", domain.NoComplaintsSentinel, 1, 0),
		}, 0},
		{"status is case sensitive", []domain.Record{
			rec("R1", "2024-01-01", "Hub", "A", "processed", domain.NoComplaintsSentinel, 1, 0),
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kpis := CalculateKPIs(tt.records, domain.DefaultTotalSystemComplaints)
			assert.Equal(t, tt.want, kpis.ReturnRate)
			assert.GreaterOrEqual(t, kpis.ReturnRate, 0.0)
			assert.LessOrEqual(t, kpis.ReturnRate, 100.0)
		})
	}
}

func TestCalculateKPIs_FractionalComplaintCounts(t *testing.T) {
	view := []domain.Record{
		rec("T1", "2024-01-01", "Hub", "A", "Pending", "X", 10, 1.5),
		rec("T2", "2024-01-02", "Hub", "A", "Pending", "X", 10, 1.5),
	}

	kpis := CalculateKPIs(view, domain.DefaultTotalSystemComplaints)
	assert.Equal(t, 3, kpis.LinkedComplaints)
}
