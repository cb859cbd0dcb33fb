package changelog

import (
	"github.com/proxylink/proxylink-api/internal/models"
	"github.com/proxylink/proxylink-api/pkg/utils"
)

const millisPerHour = 3_600_000

// CalculateAverageResponseTime derives the per-party response-time summary
// from a log's change list. Only status changes participate. The elapsed
// time between two consecutive status changes is attributed to the party
// that made the LATER change; management actors are skipped. With fewer
// than two status changes both averages are zero.
//
// Note this measures who acted, not who was waiting, and is sensitive to
// how granular the logged transitions are.
func CalculateAverageResponseTime(changes []models.RequestChange) models.AvgResponseTime {
	var statusChanges []models.RequestChange
	for _, change := range changes {
		if change.Field == "status" {
			statusChanges = append(statusChanges, change)
		}
	}

	var providerSum, proxySum float64
	var providerCount, proxyCount int

	for i := 1; i < len(statusChanges); i++ {
		delta := float64(statusChanges[i].UpdatedAt - statusChanges[i-1].UpdatedAt)
		switch statusChanges[i].ChangedBy.TenantType {
		case models.TenantTypeProvider:
			providerSum += delta
			providerCount++
		case models.TenantTypeProxy:
			proxySum += delta
			proxyCount++
		}
	}

	return models.AvgResponseTime{
		Provider: partyAverage(providerSum, providerCount),
		Proxy:    partyAverage(proxySum, proxyCount),
	}
}

func partyAverage(sum float64, count int) models.PartyResponseTime {
	if count == 0 {
		return models.PartyResponseTime{}
	}
	ms := sum / float64(count)
	return models.PartyResponseTime{
		Ms:    ms,
		Hours: utils.RoundTo(ms/millisPerHour, 2),
	}
}
