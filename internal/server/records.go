// file: internal/server/records.go
// version: 1.0.0
// guid: f95aed2a-b2e7-4c6e-85df-6ea0a96da6d5

package server

import (
	"github.com/acikyardim/yardim-paneli/internal/models"
	"github.com/acikyardim/yardim-paneli/internal/search"
)

// beneficiaryRecord flattens a beneficiary into a searchable record. Field
// names mirror the JSON wire names.
func beneficiaryRecord(b models.Beneficiary) search.Record {
	return search.Record{
		"id":          b.ID,
		"name":        b.Name,
		"national_id": b.NationalID,
		"phone":       b.Phone,
		"email":       b.Email,
		"address":     b.Address,
		"city":        b.City,
		"status":      b.Status,
		"notes":       b.Notes,
		"created_at":  b.CreatedAt,
	}
}

func beneficiaryRecords(items []models.Beneficiary) ([]search.Record, map[string]models.Beneficiary) {
	records := make([]search.Record, 0, len(items))
	byID := make(map[string]models.Beneficiary, len(items))
	for _, b := range items {
		records = append(records, beneficiaryRecord(b))
		byID[b.ID] = b
	}
	return records, byID
}

func donationRecord(d models.Donation) search.Record {
	return search.Record{
		"id":          d.ID,
		"donor_name":  d.DonorName,
		"donor_phone": d.DonorPhone,
		"donor_email": d.DonorEmail,
		"type":        d.Type,
		"status":      d.Status,
		"notes":       d.Notes,
		"amount":      d.Amount,
		"currency":    d.Currency,
		"created_at":  d.CreatedAt,
	}
}

func donationRecords(items []models.Donation) ([]search.Record, map[string]models.Donation) {
	records := make([]search.Record, 0, len(items))
	byID := make(map[string]models.Donation, len(items))
	for _, d := range items {
		records = append(records, donationRecord(d))
		byID[d.ID] = d
	}
	return records, byID
}
