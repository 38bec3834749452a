// file: internal/server/donation_service.go
// version: 1.0.0
// guid: d18455a5-5baf-4de1-9e1e-bf082ce2bff3

package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/metrics"
	"github.com/acikyardim/yardim-paneli/internal/models"
	"github.com/acikyardim/yardim-paneli/internal/search"
)

type donationRequest struct {
	DonorName     string  `json:"donor_name" binding:"required"`
	DonorPhone    string  `json:"donor_phone"`
	DonorEmail    string  `json:"donor_email"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Type          string  `json:"type"`
	BeneficiaryID string  `json:"beneficiary_id"`
	Notes         string  `json:"notes"`
}

func (s *Server) listDonations(c *gin.Context) {
	orgID := s.orgForRequest(c)
	items, err := s.store.ListDonations(orgID)
	if err != nil {
		RespondWithInternalError(c, "failed to list donations")
		return
	}

	records, byID := donationRecords(items)

	builder := search.NewFilterBuilder()
	if status := c.Query("status"); status != "" {
		builder.Eq("status", status)
	}
	if dtype := c.Query("type"); dtype != "" {
		builder.Eq("type", dtype)
	}
	if min := c.Query("min_amount"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			builder.Gte("amount", v)
		}
	}
	records = builder.Apply(records)

	if field := c.Query("sort"); field != "" {
		kind := search.SortString
		switch field {
		case "amount":
			kind = search.SortNumber
		case "created_at":
			kind = search.SortDate
		}
		records = search.ApplySort(records, field, kind, c.Query("order") == "desc")
	}

	limit, offset := paginationParams(c)
	page := paginate(records, limit, offset)

	out := make([]models.Donation, 0, len(page))
	for _, rec := range page {
		out = append(out, byID[rec["id"].(string)])
	}
	RespondWithList(c, out, len(records), limit, offset)
}

func (s *Server) getDonation(c *gin.Context) {
	d, err := s.store.GetDonationByID(c.Param("id"))
	if err != nil {
		RespondWithInternalError(c, "failed to load donation")
		return
	}
	if d == nil || d.OrgID != s.orgForRequest(c) {
		RespondWithNotFound(c, "donation", c.Param("id"))
		return
	}
	RespondWithOK(c, d)
}

func (s *Server) createDonation(c *gin.Context) {
	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "donor_name is required")
		return
	}
	if req.Amount < 0 {
		RespondWithValidationError(c, "amount", "must not be negative")
		return
	}
	if req.Type != "" && req.Type != models.DonationCash && req.Type != models.DonationInKind {
		RespondWithValidationError(c, "type", "must be cash or in_kind")
		return
	}

	orgID := s.orgForRequest(c)

	if req.BeneficiaryID != "" {
		b, err := s.store.GetBeneficiaryByID(req.BeneficiaryID)
		if err != nil {
			RespondWithInternalError(c, "failed to check beneficiary")
			return
		}
		if b == nil || b.OrgID != orgID {
			RespondWithValidationError(c, "beneficiary_id", "unknown beneficiary")
			return
		}
	}

	d, err := s.store.CreateDonation(&models.Donation{
		OrgID:         orgID,
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorPhone:    req.DonorPhone,
		DonorEmail:    req.DonorEmail,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Type:          req.Type,
		BeneficiaryID: req.BeneficiaryID,
		Notes:         req.Notes,
	})
	if err != nil {
		RespondWithInternalError(c, "failed to create donation")
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "donation.create", "donations", d.ID, d.DonorName)
	RespondWithCreated(c, d)
}

func (s *Server) updateDonation(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetDonationByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load donation")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "donation", id)
		return
	}
	if existing.Status != models.DonationPending {
		RespondWithConflict(c, "only pending donations can be edited")
		return
	}

	var req donationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "donor_name is required")
		return
	}
	if req.Amount < 0 {
		RespondWithValidationError(c, "amount", "must not be negative")
		return
	}

	existing.DonorName = strings.TrimSpace(req.DonorName)
	existing.DonorPhone = req.DonorPhone
	existing.DonorEmail = req.DonorEmail
	existing.Amount = req.Amount
	if req.Currency != "" {
		existing.Currency = req.Currency
	}
	if req.Type != "" {
		existing.Type = req.Type
	}
	existing.BeneficiaryID = req.BeneficiaryID
	existing.Notes = req.Notes

	updated, err := s.store.UpdateDonation(id, existing)
	if err != nil {
		RespondWithInternalError(c, "failed to update donation")
		return
	}
	if updated == nil {
		RespondWithNotFound(c, "donation", id)
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "donation.update", "donations", id, updated.DonorName)
	RespondWithOK(c, updated)
}

func (s *Server) deleteDonation(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetDonationByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load donation")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "donation", id)
		return
	}

	if err := s.store.DeleteDonation(id); err != nil {
		RespondWithInternalError(c, "failed to delete donation")
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "donation.delete", "donations", id, existing.DonorName)
	RespondWithNoContent(c)
}

// approveDonation moves a pending donation to approved.
func (s *Server) approveDonation(c *gin.Context) {
	s.resolveDonation(c, models.DonationApproved, "donation.approve")
}

// rejectDonation moves a pending donation to rejected.
func (s *Server) rejectDonation(c *gin.Context) {
	s.resolveDonation(c, models.DonationRejected, "donation.reject")
}

func (s *Server) resolveDonation(c *gin.Context, status, action string) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetDonationByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load donation")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "donation", id)
		return
	}
	if existing.Status != models.DonationPending {
		RespondWithConflict(c, "donation already "+existing.Status)
		return
	}

	existing.Status = status
	updated, err := s.store.UpdateDonation(id, existing)
	if err != nil || updated == nil {
		RespondWithInternalError(c, "failed to update donation")
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", action, "donations", id, updated.DonorName)
	RespondWithOK(c, updated)
}

// searchDonations runs the fuzzy search over donor fields.
func (s *Server) searchDonations(c *gin.Context) {
	query := c.Query("q")
	orgID := s.orgForRequest(c)

	items, err := s.store.ListDonations(orgID)
	if err != nil {
		RespondWithInternalError(c, "failed to list donations")
		return
	}

	records, byID := donationRecords(items)
	opts := searchOptions(c, []string{"donor_name", "donor_phone", "donor_email", "notes"})

	start := time.Now()
	results := search.Search(records, query, opts)
	metrics.ObserveSearch("donations", time.Since(start), len(results))

	type scored struct {
		Item  models.Donation `json:"item"`
		Score float64         `json:"score"`
	}
	out := make([]scored, 0, len(results))
	for _, r := range results {
		out = append(out, scored{Item: byID[r.Item["id"].(string)], Score: r.Score})
	}
	RespondWithList(c, out, len(out), opts.Limit, 0)
}
