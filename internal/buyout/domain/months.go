package domain

import "time"

// PresetMonths are the contract lengths offered as shortcuts.
var PresetMonths = []int{6, 12, 18, 24}

// PresetToMonths returns the preset value, or 0 when it is not offered.
func PresetToMonths(preset int) int {
	for _, p := range PresetMonths {
		if p == preset {
			return preset
		}
	}
	return 0
}

// MonthsUntil counts whole calendar months from now until end. A partial
// month does not count and a past end date yields 0.
func MonthsUntil(end, now time.Time) int {
	end = end.In(now.Location())
	months := monthIndex(end) - monthIndex(now)
	if months > 0 && end.Day() < now.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// MonthsLeftInclusive counts the full months between now and end, plus the
// current month unless end falls inside it.
func MonthsLeftInclusive(end, now time.Time) int {
	end = end.In(now.Location())
	diff := monthIndex(end) - monthIndex(now)
	sameMonth := diff == 0

	switch {
	case diff > 0 && end.Day() < now.Day():
		diff--
	case diff < 0 && end.Day() > now.Day():
		diff++
	}
	if !sameMonth {
		diff++
	}
	if diff < 0 {
		return 0
	}
	return diff
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}
