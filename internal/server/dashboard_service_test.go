// file: internal/server/dashboard_service_test.go
// version: 1.0.0
// guid: 6c1be0aa-96a7-4a5c-8741-1df1b6b9f0c3

package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

func TestDashboardStats(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "admin-secret")

	seedBeneficiaries(t, store)
	seedDonation(t, store, models.Donation{DonorName: "A", Amount: 100, Status: models.DonationApproved})
	seedDonation(t, store, models.Donation{DonorName: "B", Amount: 250, Status: models.DonationApproved})
	seedDonation(t, store, models.Donation{DonorName: "C", Amount: 40})

	w := doJSON(s, http.MethodPost, "/api/messages/sms", token, map[string]any{
		"to":   "+905551112233",
		"body": "test",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(s, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stats DashboardStats
	decodeData(t, w, &stats)
	assert.Equal(t, 3, stats.Beneficiaries)
	assert.Equal(t, 2, stats.ActiveBeneficiary)
	assert.Equal(t, 3, stats.Donations)
	assert.Equal(t, 1, stats.PendingDonations)
	assert.InDelta(t, 350.0, stats.ApprovedAmount, 0.001)
	assert.Equal(t, 1, stats.MessagesSent)
}

func TestDashboardStatsInvalidatedOnWrite(t *testing.T) {
	s, store := newTestServer(t)
	_, token := seedAdmin(t, store, "admin-secret")

	w := doJSON(s, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var before DashboardStats
	decodeData(t, w, &before)
	assert.Equal(t, 0, before.Beneficiaries)

	w = doJSON(s, http.MethodPost, "/api/beneficiaries", token, map[string]any{
		"name": "Ali Veli",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The create handler invalidates the cache, so the next read recomputes.
	w = doJSON(s, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after DashboardStats
	decodeData(t, w, &after)
	assert.Equal(t, 1, after.Beneficiaries)
}

func TestDashboardRequiresReportsRead(t *testing.T) {
	s, store := newTestServer(t)
	seedAdmin(t, store, "admin-secret")

	_, viewerToken := seedRole(t, store, models.RoleViewer)
	w := doJSON(s, http.MethodGet, "/api/dashboard/stats", viewerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
