package attendance

import (
	"time"
)

type Status string

const (
	// StatusPresent means both check-in and check-out exist.
	StatusPresent Status = "Present"
	// StatusPartial means only check-in exists and the workday has not ended.
	StatusPartial Status = "Partial"
	// StatusAbsent means neither check-in nor check-out exist.
	StatusAbsent Status = "Absent"
	// StatusMissingCheckOut means only check-in exists after the end of the workday.
	StatusMissingCheckOut Status = "MissingCheckOut"
)

// DefaultWorkdayEnd is the offset from work-date midnight after which an open
// check-in counts as MissingCheckOut.
const DefaultWorkdayEnd = 18 * time.Hour

type AttendanceRecord struct {
	ID           string
	EmployeeID   string
	WorkDate     time.Time // calendar date, UTC midnight
	CheckInUTC   *time.Time
	CheckOutUTC  *time.Time
	Status       Status
	Notes        *string
	CreatedAtUTC time.Time
	UpdatedAtUTC time.Time

	// DTO
	EmployeeName *string
}

// DeriveStatus computes the attendance status from check-in/check-out presence.
// Deterministic: now and the workday-end threshold are explicit inputs.
func DeriveStatus(checkIn, checkOut *time.Time, workDate, now time.Time, workdayEnd time.Duration) Status {
	switch {
	case checkIn != nil && checkOut != nil:
		return StatusPresent
	case checkIn != nil:
		endOfWorkday := workDate.Add(workdayEnd)
		if now.After(endOfWorkday) {
			return StatusMissingCheckOut
		}
		return StatusPartial
	default:
		return StatusAbsent
	}
}

// IsValidTimeRange reports whether the check-out time is not before the
// check-in time. A missing side is always valid.
func IsValidTimeRange(checkIn, checkOut *time.Time) bool {
	if checkIn != nil && checkOut != nil {
		return !checkOut.Before(*checkIn)
	}
	return true
}

// ApplyStatus re-derives the record status from its timestamps and refreshes
// the updated-at audit field. Status is never set directly by callers.
func (r *AttendanceRecord) ApplyStatus(now time.Time, workdayEnd time.Duration) {
	r.Status = DeriveStatus(r.CheckInUTC, r.CheckOutUTC, r.WorkDate, now, workdayEnd)
	r.UpdatedAtUTC = now
}

// HasValidTimeRange reports whether the record's own timestamps form a valid range.
func (r *AttendanceRecord) HasValidTimeRange() bool {
	return IsValidTimeRange(r.CheckInUTC, r.CheckOutUTC)
}
