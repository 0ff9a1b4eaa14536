// file: mappers/hackathon_mapper.go
package mappers

import (
	"time"

	"vibebuild/dto"
	"vibebuild/models"
	"vibebuild/services"
)

// ToHackathonDetail 拼出带派生阶段的视图；阶段永远现算，不回写
func ToHackathonDetail(h *models.Hackathon, now time.Time) dto.HackathonDetail {
	return dto.HackathonDetail{
		Hackathon: *h,
		Phase:     services.DerivePhase(h, now).String(),
	}
}

// ToHackathonDetails 列表版本
func ToHackathonDetails(hackathons []models.Hackathon, now time.Time) []dto.HackathonDetail {
	details := make([]dto.HackathonDetail, 0, len(hackathons))
	for i := range hackathons {
		details = append(details, ToHackathonDetail(&hackathons[i], now))
	}
	return details
}
