package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/company"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/database"
	"github.com/stafftrack/stafftrack-backend-go/internal/repository/postgresql"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// testDatabase connects to TEST_DATABASE_URL, or skips the test when unset.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"attendance_records", "employees", "companies"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestCompany(t *testing.T, db *database.DB) string {
	ctx := context.Background()
	com, err := postgresql.NewCompanyRepository(db).Create(ctx, company.Company{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      "Test Company",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return com.ID
}

func createTestEmployee(t *testing.T, db *database.DB, companyID, name string) string {
	ctx := context.Background()
	emp, err := postgresql.NewEmployeeRepository(db).Create(ctx, employee.Employee{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CompanyID: companyID,
		Name:      name,
		Position:  "Engineer",
		Age:       30,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return emp.ID
}

func newTestRecord(employeeID string, workDate time.Time) attendance.AttendanceRecord {
	checkIn := workDate.Add(8 * time.Hour)
	now := time.Now().UTC()
	return attendance.AttendanceRecord{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   employeeID,
		WorkDate:     workDate,
		CheckInUTC:   &checkIn,
		Status:       attendance.StatusPartial,
		CreatedAtUTC: now,
		UpdatedAtUTC: now,
	}
}

func TestAttendanceRepository_Create_DuplicateDate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	companyID := createTestCompany(t, db)
	employeeID := createTestEmployee(t, db, companyID, "Jane Doe")
	repo := postgresql.NewAttendanceRepository(db)

	workDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Create(ctx, newTestRecord(employeeID, workDate))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestRecord(employeeID, workDate))
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestAttendanceRepository_ListByCompany_Ordering(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	companyID := createTestCompany(t, db)
	zoeID := createTestEmployee(t, db, companyID, "Zoe")
	adamID := createTestEmployee(t, db, companyID, "Adam")
	repo := postgresql.NewAttendanceRepository(db)

	day1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	for _, rec := range []attendance.AttendanceRecord{
		newTestRecord(zoeID, day1),
		newTestRecord(adamID, day1),
		newTestRecord(zoeID, day2),
	} {
		_, err := repo.Create(ctx, rec)
		require.NoError(t, err)
	}

	records, err := repo.ListByCompany(ctx, companyID, attendance.DateRangeFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest work date first, then employee name ascending within a date.
	assert.Equal(t, zoeID, records[0].EmployeeID)
	assert.Equal(t, adamID, records[1].EmployeeID)
	assert.Equal(t, zoeID, records[2].EmployeeID)
}

func TestCompanyService_Delete_Cascades(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	companyID := createTestCompany(t, db)
	employeeID := createTestEmployee(t, db, companyID, "Jane Doe")
	workDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rec, err := attendanceRepo.Create(ctx, newTestRecord(employeeID, workDate))
	require.NoError(t, err)

	err = postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
		if err := attendanceRepo.DeleteByCompany(txCtx, companyID); err != nil {
			return err
		}
		if err := employeeRepo.DeleteByCompany(txCtx, companyID); err != nil {
			return err
		}
		return companyRepo.Delete(txCtx, companyID)
	})
	require.NoError(t, err)

	_, err = companyRepo.GetByID(ctx, companyID)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)

	_, err = employeeRepo.GetByID(ctx, employeeID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = attendanceRepo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
