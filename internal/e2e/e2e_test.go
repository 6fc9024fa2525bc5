package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	approvaldomain "github.com/sehatmu/amalan/internal/approval/domain"
	approvalservice "github.com/sehatmu/amalan/internal/approval/service"
	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/clock"
	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	employeerepo "github.com/sehatmu/amalan/internal/employee/repository"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
	eventrepo "github.com/sehatmu/amalan/internal/event/repository"
	"github.com/sehatmu/amalan/internal/observability"
	reportservice "github.com/sehatmu/amalan/internal/report/service"
	"github.com/sehatmu/amalan/internal/server"
)

// newTestStack boots the whole engine against an in-memory sqlite
// database and returns the wired gin handler.
func newTestStack(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&employeedomain.Employee{},
		&eventdomain.PrayerEvent{},
		&eventdomain.GroupSessionEvent{},
		&eventdomain.ScheduledActivityEvent{},
		&eventdomain.GroupReadingSession{},
		&eventdomain.ExceptionRequest{},
		&eventdomain.ManualCounterRecord{},
		&eventdomain.ReadingLogEntry{},
		&approvaldomain.Submission{},
	))

	log := zap.NewNop()
	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	holder, err := catalog.NewHolder(log)
	assert.NoError(t, err)

	approvals := approvalservice.NewService(approvalservice.ServiceParam{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)),
	})
	directory := employeerepo.New(db)
	reports := reportservice.NewService(reportservice.ServiceParam{
		Provider:  eventrepo.New(db, log),
		Catalog:   holder,
		Approvals: approvals,
		Directory: directory,
		Log:       log,
	})

	engine := server.NewEngine(observability.Config{Environment: "test"})
	srv := server.NewServer(server.ServerParam{
		Engine:      engine,
		ReportSvc:   reports,
		ApprovalSvc: approvals,
		Directory:   directory,
	})
	srv.RegisterAPIRoutes()
	return engine, db
}

func seedFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	at := func(d int) time.Time {
		return time.Date(2026, time.March, d, 5, 0, 0, 0, time.UTC)
	}

	assert.NoError(t, db.Create(&employeedomain.Employee{
		ID: "EMP-0001", Name: "Aisyah Rahmawati", UnitID: "igd", HospitalID: "rs-01", Active: true,
	}).Error)
	assert.NoError(t, db.Create(&employeedomain.Employee{
		ID: "EMP-0002", Name: "Budi Santoso", UnitID: "farmasi", HospitalID: "rs-01", Active: true,
	}).Error)

	rows := []any{
		&eventdomain.PrayerEvent{ID: 1, EmployeeID: "EMP-0001", PrayerName: "subuh", Status: eventdomain.PrayerStatusPresent, OccurredAt: at(2)},
		&eventdomain.PrayerEvent{ID: 2, EmployeeID: "EMP-0001", PrayerName: "maghrib", Status: eventdomain.PrayerStatusPresent, OccurredAt: at(3)},
		&eventdomain.ScheduledActivityEvent{ID: 3, EmployeeID: "EMP-0001", ActivityLabel: "apel pagi", EventDate: at(2), SignedInAt: ptr(at(2))},
		&eventdomain.ManualCounterRecord{
			ID: 4, EmployeeID: "EMP-0001", MonthKey: "2026-03", ActivityID: catalog.ActivityInfaqRutin, Count: 1,
			Entries: datatypes.JSONSlice[eventdomain.CounterEntry]{{Date: "2026-03-10"}},
		},
	}
	for _, row := range rows {
		assert.NoError(t, db.Create(row).Error)
	}
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	parsed := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestE2E_ProgressAndApprovalFlow(t *testing.T) {
	h, db := newTestStack(t)
	seedFixtures(t, db)

	// Ungated month view is readable immediately.
	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-0001/progress?month=2026-03", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var progress struct {
		Activities []struct {
			ActivityID string `json:"activity_id"`
			Achieved   int    `json:"achieved"`
		} `json:"activities"`
		PartialData bool `json:"partial_data"`
	}
	assert.NoError(t, json.Unmarshal(body["data"], &progress))
	assert.False(t, progress.PartialData)
	achieved := map[string]int{}
	for _, a := range progress.Activities {
		achieved[a.ActivityID] = a.Achieved
	}
	assert.Equal(t, 2, achieved[catalog.ActivityShalatBerjamaah])
	assert.Equal(t, 1, achieved[catalog.ActivityApelPagi])
	assert.Equal(t, 1, achieved[catalog.ActivityInfaqRutin])

	// Before any approval the official year score has no qualifying months.
	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-0001/kpi?year=2026", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var official struct {
		Result struct {
			QualifyingMonths []string `json:"qualifying_months"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(body["data"], &official))
	assert.Empty(t, official.Result.QualifyingMonths)

	// Submit March and walk it through both reviews.
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/employees/EMP-0001/submissions", map[string]string{"month_key": "2026-03"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-0001/submissions/2026-03", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(body["data"]), "pending_mentor")

	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/employees/EMP-0001/submissions/2026-03/mentor-review",
		map[string]any{"reviewer": "MENTOR-1", "approve": true})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/employees/EMP-0001/submissions/2026-03/unit-head-review",
		map[string]any{"reviewer": "HEAD-1", "approve": true})
	assert.Equal(t, http.StatusOK, rec.Code)

	// The approved month now feeds the official score.
	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-0001/kpi?year=2026", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, json.Unmarshal(body["data"], &official))
	assert.Equal(t, []string{"2026-03"}, official.Result.QualifyingMonths)

	// Re-reviewing an approved month conflicts.
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/employees/EMP-0001/submissions/2026-03/unit-head-review",
		map[string]any{"reviewer": "HEAD-1", "approve": false})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestE2E_RollupAndDirectory(t *testing.T) {
	h, db := newTestStack(t)
	seedFixtures(t, db)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/employees", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var employees []struct {
		ID string `json:"ID"`
	}
	assert.NoError(t, json.Unmarshal(body["data"], &employees))
	assert.Len(t, employees, 2)

	// Rollup over the whole directory grouped by unit.
	rec, body = doJSON(t, h, http.MethodGet, "/api/v1/rollup?group_by=unit&month=2026-03", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Rows []struct {
			GroupID     string `json:"group_id"`
			MemberCount int    `json:"member_count"`
		} `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(body["data"], &report))
	groupIDs := make([]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		groupIDs = append(groupIDs, row.GroupID)
	}
	assert.Equal(t, []string{"farmasi", "igd"}, groupIDs)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/rollup?group_by=floor&month=2026-03", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestE2E_RollupSpansDirectoryPages(t *testing.T) {
	h, db := newTestStack(t)

	// More active employees than one directory cursor page holds.
	employees := make([]employeedomain.Employee, 0, 260)
	for i := 1; i <= 260; i++ {
		employees = append(employees, employeedomain.Employee{
			ID:         fmt.Sprintf("EMP-%04d", i),
			Name:       fmt.Sprintf("Pegawai %d", i),
			UnitID:     "igd",
			HospitalID: "rs-01",
			Active:     true,
		})
	}
	assert.NoError(t, db.CreateInBatches(employees, 100).Error)

	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/rollup?group_by=unit&month=2026-03", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Rows []struct {
			GroupID     string `json:"group_id"`
			MemberCount int    `json:"member_count"`
		} `json:"rows"`
	}
	assert.NoError(t, json.Unmarshal(body["data"], &report))
	assert.Len(t, report.Rows, 1)
	assert.Equal(t, 260, report.Rows[0].MemberCount)
}

func TestE2E_ErrorMapping(t *testing.T) {
	h, _ := newTestStack(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/employees/EMP-0001/progress?month=bulan-tiga", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/employees/EMP-0001/submissions/2026-03/mentor-review",
		map[string]any{"reviewer": "MENTOR-1", "approve": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func ptr[T any](v T) *T { return &v }
