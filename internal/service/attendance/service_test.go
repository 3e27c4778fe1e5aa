package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafftrack/stafftrack-backend-go/internal/domain/attendance"
	"github.com/stafftrack/stafftrack-backend-go/internal/domain/employee"
)

const (
	testEmployeeID = "01912345-89ab-7def-8123-456789abcdef"
	testCompanyID  = "01912345-89ab-7abc-9123-456789abcdef"
)

// fakeAttendanceRepo is an in-memory AttendanceRepository. It enforces the
// same (employee_id, work_date) uniqueness the real storage does.
type fakeAttendanceRepo struct {
	records map[string]attendance.AttendanceRecord
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.AttendanceRecord)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == record.EmployeeID && existing.WorkDate.Equal(record.WorkDate) {
			return attendance.AttendanceRecord{}, attendance.ErrDuplicateAttendance
		}
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, workDate time.Time) (*attendance.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.WorkDate.Equal(workDate) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecord, error) {
	var result []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if !matchesRange(rec.WorkDate, filter) {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WorkDate.After(result[j].WorkDate)
	})
	return result, nil
}

func (f *fakeAttendanceRepo) ListByCompany(_ context.Context, _ string, filter attendance.DateRangeFilter) ([]attendance.AttendanceRecord, error) {
	var result []attendance.AttendanceRecord
	for _, rec := range f.records {
		if matchesRange(rec.WorkDate, filter) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WorkDate.After(result[j].WorkDate)
	})
	return result, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.AttendanceRecord) error {
	if _, ok := f.records[record.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) DeleteByCompany(_ context.Context, _ string) error {
	return nil
}

func matchesRange(workDate time.Time, filter attendance.DateRangeFilter) bool {
	day := workDate.Format("2006-01-02")
	if filter.FromDate != nil && *filter.FromDate != "" && day < *filter.FromDate {
		return false
	}
	if filter.ToDate != nil && *filter.ToDate != "" && day > *filter.ToDate {
		return false
	}
	return true
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	salary := decimal.NewFromInt(4500)
	return &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:        testEmployeeID,
			CompanyID: testCompanyID,
			Name:      "Jane Doe",
			Position:  "Engineer",
			Age:       30,
			Salary:    &salary,
		},
	}}
}

func (f *fakeEmployeeRepo) ListByCompany(_ context.Context, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) DeleteByCompany(_ context.Context, companyID string) error {
	for id, emp := range f.employees {
		if emp.CompanyID == companyID {
			delete(f.employees, id)
		}
	}
	return nil
}

func newTestService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		EmployeeRepository:   newFakeEmployeeRepo(),
		workdayEnd:           attendance.DefaultWorkdayEnd,
		now:                  func() time.Time { return now },
	}
}

func strPtr(s string) *string {
	return &s
}

func TestAttendanceService_CheckIn_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	rec, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, testEmployeeID, rec.EmployeeID)
	assert.Equal(t, "Jane Doe", rec.EmployeeName)
	assert.Equal(t, "2024-01-10", rec.WorkDate)
	require.NotNil(t, rec.CheckInUTC)
	assert.Equal(t, "2024-01-10T08:30:00Z", *rec.CheckInUTC)
	assert.Nil(t, rec.CheckOutUTC)
	assert.Equal(t, string(attendance.StatusPartial), rec.Status)
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_UnknownEmployee(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: "01912345-89ab-7def-8123-000000000000",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_Create_DuplicateDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	req := attendance.CreateAttendanceRequest{
		EmployeeID: testEmployeeID,
		WorkDate:   "2024-01-10",
		CheckInUTC: strPtr("2024-01-10T08:30:00Z"),
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestAttendanceService_Create_InvalidRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	_, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID:  testEmployeeID,
		WorkDate:    "2024-01-10",
		CheckInUTC:  strPtr("2024-01-10T17:00:00Z"),
		CheckOutUTC: strPtr("2024-01-10T08:30:00Z"),
	})
	require.Error(t, err)
}

func TestAttendanceService_Create_BackfillMissingCheckOut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Back-filling a past date with an open check-in: the workday is long over.
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	rec, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: testEmployeeID,
		WorkDate:   "2024-01-10",
		CheckInUTC: strPtr("2024-01-10T08:30:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusMissingCheckOut), rec.Status)
}

func TestAttendanceService_Update_WorkDateImmutable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, now)

	created, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: testEmployeeID,
		WorkDate:   "2024-01-10",
		CheckInUTC: strPtr("2024-01-10T08:30:00Z"),
	})
	require.NoError(t, err)

	err = svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:         created.ID,
		WorkDate:   "2024-01-11",
		CheckInUTC: strPtr("2024-01-10T08:30:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrWorkDateChangeNotAllowed)
}

func TestAttendanceService_Update_ReplacesFieldsAndStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, now)

	created, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: testEmployeeID,
		WorkDate:   "2024-01-10",
		CheckInUTC: strPtr("2024-01-10T08:30:00Z"),
		Notes:      strPtr("forgot badge"),
	})
	require.NoError(t, err)

	err = svc.Update(ctx, attendance.UpdateAttendanceRequest{
		ID:          created.ID,
		WorkDate:    "2024-01-10",
		CheckInUTC:  strPtr("2024-01-10T08:30:00Z"),
		CheckOutUTC: strPtr("2024-01-10T17:00:00Z"),
	})
	require.NoError(t, err)

	updated, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), updated.Status)
	require.NotNil(t, updated.CheckOutUTC)
	assert.Equal(t, "2024-01-10T17:00:00Z", *updated.CheckOutUTC)
	// Omitted fields are cleared, not preserved.
	assert.Nil(t, updated.Notes)
}

func TestAttendanceService_CheckOut_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, now)

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	rec, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          created.ID,
		CheckOutUTC: "2024-01-10T17:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), rec.Status)
	require.NotNil(t, rec.CheckOutUTC)
	assert.Equal(t, "2024-01-10T17:00:00Z", *rec.CheckOutUTC)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          created.ID,
		CheckOutUTC: "2024-01-10T17:00:00Z",
	})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          created.ID,
		CheckOutUTC: "2024-01-10T18:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestAttendanceService_CheckOut_BeforeCheckIn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          created.ID,
		CheckOutUTC: "2024-01-10T06:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
}

func TestAttendanceService_CheckOut_NotesOverwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		Notes:      strPtr("morning note"),
	})
	require.NoError(t, err)

	// Blank notes leave the existing ones in place.
	rec, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          created.ID,
		CheckOutUTC: "2024-01-10T17:00:00Z",
		Notes:       strPtr("   "),
	})
	require.NoError(t, err)
	require.NotNil(t, rec.Notes)
	assert.Equal(t, "morning note", *rec.Notes)
}

func TestAttendanceService_CheckOut_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{
		ID:          "01912345-89ab-7def-8123-000000000001",
		CheckOutUTC: "2024-01-10T17:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	created, err := svc.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: testEmployeeID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceService_ListByEmployee_RangeAndOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(newFakeAttendanceRepo(), now)

	for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"} {
		_, err := svc.Create(ctx, attendance.CreateAttendanceRequest{
			EmployeeID: testEmployeeID,
			WorkDate:   day,
			CheckInUTC: strPtr(day + "T08:30:00Z"),
		})
		require.NoError(t, err)
	}

	records, err := svc.ListByEmployee(ctx, testEmployeeID, attendance.DateRangeFilter{
		FromDate: strPtr("2024-01-09"),
		ToDate:   strPtr("2024-01-10"),
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-10", records[0].WorkDate)
	assert.Equal(t, "2024-01-09", records[1].WorkDate)
}
