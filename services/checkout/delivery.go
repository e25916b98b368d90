package checkout

import (
	"fmt"
	"time"
)

const noteTimeLayout = "02.01.2006 15:04"

type Delivery struct {
	ETAHours      int
	PreferredTime string
	ScheduledAt   time.Time
	Note          string
}

// ComputeDelivery schedules at the earliest allowed moment, or at the first
// occurrence of the preferred time of day that is not before it.
func ComputeDelivery(now time.Time, policy Policy, preferred *TimeOfDay) Delivery {
	loc := policy.location()
	earliest := now.In(loc).Add(time.Duration(policy.MinLeadHours) * time.Hour)

	if preferred == nil {
		return Delivery{
			ETAHours:    policy.MinLeadHours,
			ScheduledAt: earliest,
			Note: fmt.Sprintf("Delivered within %d hours. Scheduled for %s",
				policy.MinLeadHours, earliest.Format(noteTimeLayout)),
		}
	}

	scheduled := time.Date(earliest.Year(), earliest.Month(), earliest.Day(), preferred.Hour, preferred.Minute, 0, 0, loc)
	if scheduled.Before(earliest) {
		// next day at the same wall clock time, also across DST changes
		scheduled = scheduled.AddDate(0, 0, 1)
	}

	return Delivery{
		ETAHours:      policy.MinLeadHours,
		PreferredTime: preferred.String(),
		ScheduledAt:   scheduled,
		Note: fmt.Sprintf("Delivered within %d hours. Preferred time %s, scheduled for %s",
			policy.MinLeadHours, preferred.String(), scheduled.Format(noteTimeLayout)),
	}
}
