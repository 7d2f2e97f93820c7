package analytics

import (
	"time"

	"nordpulse/pkg/contracts/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rec(id, date, product, category, status, complaints string, price, count float64) domain.Record {
	return domain.Record{
		TransactionID:     id,
		Date:              day(date),
		Price:             price,
		ProductName:       product,
		ProductCategory:   category,
		Status:            status,
		ComplaintCategory: complaints,
		ComplaintCount:    count,
	}
}

// threeRecords is the minimal mixed dataset: two categories, one multi-label record
func threeRecords() []domain.Record {
	return []domain.Record{
		rec("T1", "2024-01-01", "Hub", "A", domain.StatusProcessed, "X, Y", 100, 2),
		rec("T2", "2024-01-02", "Hub", "A", "Pending", domain.NoComplaintsSentinel, 50, 0),
		rec("T3", "2024-01-09", "Lamp", "B", domain.StatusProcessed, "X", 25, 1),
	}
}

// salesRecords spans three weeks, three categories and several labels
func salesRecords() []domain.Record {
	return []domain.Record{
		rec("S1", "2024-03-04", "Hub", "Smart Home", domain.StatusProcessed, "Battery, Delivery", 120, 2),
		rec("S2", "2024-03-05", "Hub", "Smart Home", "Pending", domain.NoComplaintsSentinel, 120, 0),
		rec("S3", "2024-03-10", "Speaker", "Audio", "Pending", "Noise", 80, 1),
		rec("S4", "2024-03-11", "Speaker", "Audio", domain.StatusProcessed, "Battery", 80, 1),
		rec("S5", "2024-03-12", "Cable", "Accessories", "Pending", domain.NoComplaintsSentinel, 10, 0),
		rec("S6", "2024-03-18", "Lamp", "Smart Home", domain.StatusProcessed, "Delivery", 45, 3),
		rec("S7", "2024-03-19", "Cable", "Accessories", "Pending", "Packaging", 10, 1),
	}
}

func dataset(records []domain.Record) *domain.Dataset {
	return &domain.Dataset{
		Source:   "test.csv",
		LoadedAt: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
		Records:  records,
	}
}
