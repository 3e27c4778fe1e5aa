package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stafftrack/stafftrack-backend-go/internal/config"
	appHTTP "github.com/stafftrack/stafftrack-backend-go/internal/handler/http"
	"github.com/stafftrack/stafftrack-backend-go/internal/pkg/database"
	"github.com/stafftrack/stafftrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/stafftrack/stafftrack-backend-go/internal/service/attendance"
	companyService "github.com/stafftrack/stafftrack-backend-go/internal/service/company"
	employeeService "github.com/stafftrack/stafftrack-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	companySvc := companyService.NewCompanyService(companyRepo, employeeRepo, attendanceRepo, db)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, companyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		time.Duration(cfg.Attendance.WorkdayEndHour)*time.Hour,
	)

	companyHandler := appHTTP.NewCompanyHandler(companySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(cfg.App, companyHandler, employeeHandler, attendanceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
