// file: internal/server/dashboard_service.go
// version: 1.0.0
// guid: d7e7413e-1d01-457d-a3d0-450a10035243

package server

import (
	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

// DashboardStats is the cached aggregate the panel home screen shows.
type DashboardStats struct {
	Beneficiaries     int     `json:"beneficiaries"`
	ActiveBeneficiary int     `json:"active_beneficiaries"`
	Donations         int     `json:"donations"`
	PendingDonations  int     `json:"pending_donations"`
	ApprovedAmount    float64 `json:"approved_amount"`
	MessagesSent      int     `json:"messages_sent"`
}

// dashboardStats aggregates counts for the org. Results are cached briefly;
// every write handler invalidates the cache.
func (s *Server) dashboardStats(c *gin.Context) {
	orgID := s.orgForRequest(c)

	if stats, ok := s.statsCache.Get(orgID); ok {
		RespondWithOK(c, stats)
		return
	}

	stats, err := s.computeStats(orgID)
	if err != nil {
		RespondWithInternalError(c, "failed to compute stats")
		return
	}

	s.statsCache.Set(orgID, stats)
	RespondWithOK(c, stats)
}

func (s *Server) computeStats(orgID string) (DashboardStats, error) {
	var stats DashboardStats

	beneficiaries, err := s.store.ListBeneficiaries(orgID)
	if err != nil {
		return stats, err
	}
	stats.Beneficiaries = len(beneficiaries)
	for _, b := range beneficiaries {
		if b.Status == models.BeneficiaryActive {
			stats.ActiveBeneficiary++
		}
	}

	donations, err := s.store.ListDonations(orgID)
	if err != nil {
		return stats, err
	}
	stats.Donations = len(donations)
	for _, d := range donations {
		if d.Status == models.DonationPending {
			stats.PendingDonations++
		}
	}

	stats.ApprovedAmount, err = s.store.SumDonationAmounts(orgID, models.DonationApproved)
	if err != nil {
		return stats, err
	}

	msgs, err := s.store.ListMessages(orgID, 0)
	if err != nil {
		return stats, err
	}
	for _, m := range msgs {
		if m.Status == models.MessageSent {
			stats.MessagesSent++
		}
	}

	return stats, nil
}
