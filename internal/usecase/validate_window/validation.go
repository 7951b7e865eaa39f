package validate_window

import (
	"fmt"
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

// maxDurationMinutes returns the effective cap for the tier/mode pair:
// the mode maximum, tightened by the tier maximum when one is set.
func maxDurationMinutes(tier *domain.CustomerTier, mode domain.Mode) int {
	max := mode.MaxDurationMinutes()
	if tier != nil && tier.MaxDurationMinutes > 0 && tier.MaxDurationMinutes < max {
		max = tier.MaxDurationMinutes
	}
	return max
}

// checkDuration applies the duration rules: at least the mode minimum,
// quantized for customer-facing modes, and within the tier/mode cap.
func checkDuration(window domain.TimeWindow, tier *domain.CustomerTier, mode domain.Mode) Result {
	minutes := window.DurationMinutes()

	if !window.End.After(window.Start) {
		return invalid("end time must be after start time")
	}
	if minutes < mode.MinDurationMinutes() {
		return invalid(fmt.Sprintf("minimum duration is %d minutes", mode.MinDurationMinutes()))
	}
	if mode.Quantized() && minutes%domain.SlotUnitMinutes != 0 {
		return invalid(fmt.Sprintf("duration must be in %d-minute increments", domain.SlotUnitMinutes))
	}
	if max := maxDurationMinutes(tier, mode); minutes > max {
		return invalid(fmt.Sprintf("maximum duration is %d minutes", max))
	}
	return valid
}

// checkOperatingHours verifies the window sits inside the facility schedule
// for its day, in the facility timezone. Administrative holds skip this;
// overnight maintenance is routine.
func checkOperatingHours(window domain.TimeWindow, schedule domain.WeekSchedule, loc *time.Location) Result {
	if !window.SameCalendarDay(loc) {
		return invalid("reservation must start and end on the same day")
	}

	start := window.Start.In(loc)
	end := window.End.In(loc)
	day := schedule.ForWeekday(start.Weekday())

	if day.Closed {
		return invalid("the facility is closed on " + start.Weekday().String())
	}

	openMin, err := day.Open.MinutesOfDay()
	if err != nil {
		return invalid("facility hours are misconfigured for " + start.Weekday().String())
	}
	closeMin, err := day.Close.MinutesOfDay()
	if err != nil {
		return invalid("facility hours are misconfigured for " + start.Weekday().String())
	}

	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endMin == 0 {
		// Ending exactly at midnight still belongs to the start day.
		endMin = 24 * 60
	}

	if startMin < openMin || endMin > closeMin {
		return invalid(fmt.Sprintf("outside operating hours (%s–%s)", day.Open, day.Close))
	}
	return valid
}

// ValidDurations returns the ordered duration choices, in minutes, the
// tier/mode pair allows. Administrative holds are free-form, so the list
// is empty for block and maintenance.
func ValidDurations(tier *domain.CustomerTier, mode domain.Mode) []int {
	if !mode.Quantized() {
		return nil
	}

	max := maxDurationMinutes(tier, mode)
	durations := make([]int, 0, max/domain.SlotUnitMinutes)
	for d := mode.MinDurationMinutes(); d <= max; d += domain.SlotUnitMinutes {
		durations = append(durations, d)
	}
	return durations
}
