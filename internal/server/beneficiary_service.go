// file: internal/server/beneficiary_service.go
// version: 1.0.0
// guid: e5dc2c16-3a43-4ca5-9fdf-96b02ba73a41

package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/importer"
	"github.com/acikyardim/yardim-paneli/internal/metrics"
	"github.com/acikyardim/yardim-paneli/internal/models"
	"github.com/acikyardim/yardim-paneli/internal/search"
)

type beneficiaryRequest struct {
	Name          string `json:"name" binding:"required"`
	NationalID    string `json:"national_id"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Status        string `json:"status"`
	HouseholdSize int    `json:"household_size"`
	Notes         string `json:"notes"`
}

// listBeneficiaries returns beneficiaries with optional status/city filters
// and Turkish-aware sorting.
func (s *Server) listBeneficiaries(c *gin.Context) {
	orgID := s.orgForRequest(c)
	items, err := s.store.ListBeneficiaries(orgID)
	if err != nil {
		RespondWithInternalError(c, "failed to list beneficiaries")
		return
	}

	records, byID := beneficiaryRecords(items)

	builder := search.NewFilterBuilder()
	if status := c.Query("status"); status != "" {
		builder.Eq("status", status)
	}
	if city := c.Query("city"); city != "" {
		builder.Eq("city", city)
	}
	records = builder.Apply(records)

	if field := c.Query("sort"); field != "" {
		kind := search.SortString
		if field == "created_at" {
			kind = search.SortDate
		}
		records = search.ApplySort(records, field, kind, c.Query("order") == "desc")
	}

	limit, offset := paginationParams(c)
	page := paginate(records, limit, offset)

	out := make([]models.Beneficiary, 0, len(page))
	for _, rec := range page {
		out = append(out, byID[rec["id"].(string)])
	}
	RespondWithList(c, out, len(records), limit, offset)
}

func (s *Server) getBeneficiary(c *gin.Context) {
	b, err := s.store.GetBeneficiaryByID(c.Param("id"))
	if err != nil {
		RespondWithInternalError(c, "failed to load beneficiary")
		return
	}
	if b == nil || b.OrgID != s.orgForRequest(c) {
		RespondWithNotFound(c, "beneficiary", c.Param("id"))
		return
	}
	RespondWithOK(c, b)
}

func (s *Server) createBeneficiary(c *gin.Context) {
	var req beneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "name is required")
		return
	}
	if req.Status != "" && !models.ValidBeneficiaryStatus(req.Status) {
		RespondWithValidationError(c, "status", "must be active, passive or pending")
		return
	}

	orgID := s.orgForRequest(c)
	b, err := s.store.CreateBeneficiary(&models.Beneficiary{
		OrgID:         orgID,
		Name:          strings.TrimSpace(req.Name),
		NationalID:    req.NationalID,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		City:          req.City,
		Status:        req.Status,
		HouseholdSize: req.HouseholdSize,
		Notes:         req.Notes,
	})
	if err != nil {
		RespondWithInternalError(c, "failed to create beneficiary")
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "beneficiary.create", "beneficiaries", b.ID, b.Name)
	RespondWithCreated(c, b)
}

func (s *Server) updateBeneficiary(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetBeneficiaryByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load beneficiary")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "beneficiary", id)
		return
	}

	var req beneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBadRequest(c, "name is required")
		return
	}
	if req.Status != "" && !models.ValidBeneficiaryStatus(req.Status) {
		RespondWithValidationError(c, "status", "must be active, passive or pending")
		return
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.NationalID = req.NationalID
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address
	existing.City = req.City
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.HouseholdSize = req.HouseholdSize
	existing.Notes = req.Notes

	updated, err := s.store.UpdateBeneficiary(id, existing)
	if err != nil {
		RespondWithInternalError(c, "failed to update beneficiary")
		return
	}
	if updated == nil {
		RespondWithNotFound(c, "beneficiary", id)
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "beneficiary.update", "beneficiaries", id, updated.Name)
	RespondWithOK(c, updated)
}

func (s *Server) deleteBeneficiary(c *gin.Context) {
	id := c.Param("id")
	orgID := s.orgForRequest(c)

	existing, err := s.store.GetBeneficiaryByID(id)
	if err != nil {
		RespondWithInternalError(c, "failed to load beneficiary")
		return
	}
	if existing == nil || existing.OrgID != orgID {
		RespondWithNotFound(c, "beneficiary", id)
		return
	}

	if err := s.store.DeleteBeneficiary(id); err != nil {
		RespondWithInternalError(c, "failed to delete beneficiary")
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "beneficiary.delete", "beneficiaries", id, existing.Name)
	RespondWithNoContent(c)
}

// searchBeneficiaries runs the diacritic-tolerant fuzzy search over the
// org's beneficiaries.
func (s *Server) searchBeneficiaries(c *gin.Context) {
	query := c.Query("q")
	orgID := s.orgForRequest(c)

	items, err := s.store.ListBeneficiaries(orgID)
	if err != nil {
		RespondWithInternalError(c, "failed to list beneficiaries")
		return
	}

	records, byID := beneficiaryRecords(items)
	opts := searchOptions(c, []string{"name", "national_id", "phone", "city", "address"})

	start := time.Now()
	results := search.Search(records, query, opts)
	metrics.ObserveSearch("beneficiaries", time.Since(start), len(results))

	type scored struct {
		Item  models.Beneficiary `json:"item"`
		Score float64            `json:"score"`
	}
	out := make([]scored, 0, len(results))
	for _, r := range results {
		out = append(out, scored{Item: byID[r.Item["id"].(string)], Score: r.Score})
	}
	RespondWithList(c, out, len(out), opts.Limit, 0)
}

// suggestBeneficiaries returns name completions for a partial query.
func (s *Server) suggestBeneficiaries(c *gin.Context) {
	query := c.Query("q")
	field := c.DefaultQuery("field", "name")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := s.store.ListBeneficiaries(s.orgForRequest(c))
	if err != nil {
		RespondWithInternalError(c, "failed to list beneficiaries")
		return
	}

	records, _ := beneficiaryRecords(items)
	suggestions := search.Suggestions(records, query, field, limit)
	RespondWithOK(c, suggestions)
}

// importBeneficiaries ingests a CSV body of beneficiaries.
func (s *Server) importBeneficiaries(c *gin.Context) {
	orgID := s.orgForRequest(c)

	result, err := importer.ImportBeneficiaries(c.Request.Body, s.store, orgID, nil)
	if err != nil {
		RespondWithBadRequest(c, "invalid CSV: "+err.Error())
		return
	}

	s.statsCache.InvalidateAll()
	s.recordActivity(c, orgID, "", "beneficiary.import", "beneficiaries", "", strconv.Itoa(result.Imported)+" imported")
	RespondWithOK(c, result)
}

// searchOptions reads the shared search query params.
func searchOptions(c *gin.Context, defaultFields []string) search.Options {
	opts := search.Options{
		Fields:    defaultFields,
		Threshold: search.DefaultThreshold,
	}
	if fields := c.Query("fields"); fields != "" {
		opts.Fields = strings.Split(fields, ",")
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if threshold, err := strconv.ParseFloat(c.Query("threshold"), 64); err == nil && threshold > 0 && threshold <= 1 {
		opts.Threshold = threshold
	}
	opts.DiacriticSensitive = c.Query("diacritic_sensitive") == "true"
	return opts
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate(records []search.Record, limit, offset int) []search.Record {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
