package domain

// significantDropPercent is the drop above which a measured speed is flagged.
const significantDropPercent = 20.0

// SpeedCheck compares an estimated line speed with the measured one.
type SpeedCheck struct {
	EstimatedSpeed float64
	ActualSpeed    float64
	DropPercent    float64
	Significant    bool
}

// VerifySpeed computes how far the measured speed falls short of the estimate.
// A non-positive estimate yields a zero drop.
func VerifySpeed(estimated, actual float64) SpeedCheck {
	out := SpeedCheck{EstimatedSpeed: estimated, ActualSpeed: actual}
	if estimated <= 0 {
		return out
	}
	out.DropPercent = (estimated - actual) / estimated * 100
	out.Significant = out.DropPercent > significantDropPercent
	return out
}
