package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/database"
)

const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
// A unique violation on (employee_id, work_date) is reported as
// ErrDuplicateAttendance so racing writers are rejected at commit time.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, work_date, check_in_utc, check_out_utc,
			status, notes, created_at_utc, updated_at_utc
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := q.Exec(ctx, query,
		record.ID,
		record.EmployeeID,
		record.WorkDate,
		record.CheckInUTC,
		record.CheckOutUTC,
		record.Status,
		record.Notes,
		record.CreatedAtUTC,
		record.UpdatedAtUTC,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.AttendanceRecord{}, attendance.ErrDuplicateAttendance
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.employee_id, a.work_date, a.check_in_utc, a.check_out_utc,
			   a.status, a.notes, a.created_at_utc, a.updated_at_utc,
			   e.name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInUTC, &rec.CheckOutUTC,
		&rec.Status, &rec.Notes, &rec.CreatedAtUTC, &rec.UpdatedAtUTC,
		&rec.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, work_date, check_in_utc, check_out_utc,
			   status, notes, created_at_utc, updated_at_utc
		FROM attendance_records
		WHERE employee_id = $1
		  AND work_date = $2
		LIMIT 1
	`

	var rec attendance.AttendanceRecord
	err := q.QueryRow(ctx, query, employeeID, workDate).Scan(
		&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInUTC, &rec.CheckOutUTC,
		&rec.Status, &rec.Notes, &rec.CreatedAtUTC, &rec.UpdatedAtUTC,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no existing record
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.FromDate != nil && *filter.FromDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil && *filter.ToDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.ToDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.work_date, a.check_in_utc, a.check_out_utc,
			   a.status, a.notes, a.created_at_utc, a.updated_at_utc,
			   e.name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.work_date DESC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListByCompany implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByCompany(ctx context.Context, companyID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "e.company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.FromDate != nil && *filter.FromDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil && *filter.ToDate != "" {
		baseWhere += fmt.Sprintf(" AND a.work_date <= $%d", argIdx)
		args = append(args, *filter.ToDate)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.work_date, a.check_in_utc, a.check_out_utc,
			   a.status, a.notes, a.created_at_utc, a.updated_at_utc,
			   e.name AS employee_name
		FROM attendance_records a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.work_date DESC, e.name ASC
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query company attendance records: %w", err)
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// Update implements attendance.AttendanceRepository.
// The work date is deliberately absent from the SET list; it is immutable.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.AttendanceRecord) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in_utc = $1,
			check_out_utc = $2,
			status = $3,
			notes = $4,
			updated_at_utc = $5
		WHERE id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.CheckInUTC,
		record.CheckOutUTC,
		record.Status,
		record.Notes,
		record.UpdatedAtUTC,
		record.ID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// DeleteByCompany implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByCompany(ctx context.Context, companyID string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		DELETE FROM attendance_records
		WHERE employee_id IN (SELECT id FROM employees WHERE company_id = $1)
	`

	if _, err := q.Exec(ctx, query, companyID); err != nil {
		return fmt.Errorf("failed to delete company attendance records: %w", err)
	}

	return nil
}

func scanAttendanceRows(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.CheckInUTC, &rec.CheckOutUTC,
			&rec.Status, &rec.Notes, &rec.CreatedAtUTC, &rec.UpdatedAtUTC,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
