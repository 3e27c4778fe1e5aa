package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / create errors
	ErrAlreadyCheckedIn    = errors.New("employee has already checked in today")
	ErrDuplicateAttendance = errors.New("attendance record already exists for this employee and work date")

	// Check-out errors
	ErrAlreadyCheckedOut = errors.New("attendance record has already been checked out")

	// Mutation errors
	ErrWorkDateChangeNotAllowed = errors.New("work date cannot be changed after creation")
	ErrInvalidTimeRange         = errors.New("check-out time must not be before check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
