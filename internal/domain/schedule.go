package domain

import (
	"time"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/types"
)

// DayHours is the operating span for one weekday.
type DayHours struct {
	Closed bool
	Open   types.TimeString
	Close  types.TimeString
}

// WeekSchedule is the facility operating schedule, one entry per weekday.
type WeekSchedule struct {
	Monday    DayHours
	Tuesday   DayHours
	Wednesday DayHours
	Thursday  DayHours
	Friday    DayHours
	Saturday  DayHours
	Sunday    DayHours
}

// ForWeekday returns the hours for the given weekday.
func (s WeekSchedule) ForWeekday(d time.Weekday) DayHours {
	switch d {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DayHours{Closed: true}
	}
}
