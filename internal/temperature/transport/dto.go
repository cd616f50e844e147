package transport

import "salesdesk_backend/internal/shared/profile"

type CalculateRequest struct {
	Customer          profile.Customer      `json:"customer"`
	Provider          profile.ProviderInput `json:"provider"`
	PainPoints        []string              `json:"painPoints" validate:"max=10,dive,max=50"`
	AppointmentType   string                `json:"appointmentType" validate:"omitempty,oneof=lead revisit"`
	SelectedPackageID string                `json:"selectedPackageId" validate:"max=50"`
}

type CategoryResponse struct {
	Category string   `json:"category"`
	Score    int      `json:"score"`
	MaxScore int      `json:"maxScore"`
	Details  []string `json:"details"`
}

type TemperatureResponse struct {
	TotalScore  int                `json:"totalScore"`
	MaxScore    int                `json:"maxScore"`
	Percentage  int                `json:"percentage"`
	Temperature string             `json:"temperature"`
	Breakdown   []CategoryResponse `json:"breakdown"`
}
