package api

import (
	"bytes"
	"encoding/json"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/repository/memory"
	"fitu/dashboard/internal/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHookSecret = "hook-secret"

type testServer struct {
	router *gin.Engine
	store  repository.Store
	auth   service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore(memory.Open())
	auth := service.NewAuthService("test-secret", "fitu", time.Hour, "")
	rosters := service.NewRosterService(store.Rosters, store.Students)
	svc := Services{
		Auth:          auth,
		Accounts:      service.NewAccountService(store.Students, store.Instructors, ""),
		Instructors:   service.NewInstructorService(store.Instructors),
		Dashboard:     service.NewDashboardService(store.Students, store.Rosters, store.Assignments, store.PerformedExercises),
		Students:      service.NewStudentService(store.Students),
		Rosters:       rosters,
		Exports:       service.NewExportService(rosters, nil),
		Assignments:   service.NewAssignmentService(store.Assignments, store.PerformedExercises, store.Rosters, store.Students),
		Announcements: service.NewAnnouncementService(store.Announcements, store.Rosters),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, testHookSecret, svc)
	return &testServer{router: router, store: store, auth: auth}
}

func (s *testServer) token(t *testing.T, uid, email string) string {
	t.Helper()
	token, err := s.auth.IssueToken(domain.Session{UID: uid, Email: email, DisplayName: uid})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestAuthAndInstructorGate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/instructor/roster", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/roster", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/roster", s.token(t, "s1", "s1@school.edu"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/roster", s.token(t, "i1", "coach@dict.gov.ph"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"instructorId":"i1","students":[]}`, w.Body.String())
}

func TestAccountHook(t *testing.T) {
	s := newTestServer(t)
	acct := domain.NewAccount{UID: "s1", Email: "s1@school.edu", DisplayName: "Sam"}

	w := s.do(t, http.MethodPost, "/api/v1/hooks/accounts", "", acct)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/hooks/accounts", "", acct, HookSecretHeader, testHookSecret)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"uid":"s1","kind":"student"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/hooks/accounts", "", domain.NewAccount{UID: "x"}, HookSecretHeader, testHookSecret)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Contains(t, body["fields"], "email")

	w = s.do(t, http.MethodPost, "/api/v1/me/last-active", s.token(t, "s1", "s1@school.edu"), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/me/last-active", s.token(t, "ghost", "ghost@school.edu"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentLifecycle(t *testing.T) {
	s := newTestServer(t)
	instructor := s.token(t, "i1", "coach@dict.gov.ph")
	student := s.token(t, "s1", "s1@school.edu")

	w := s.do(t, http.MethodPut, "/api/v1/instructor/roster", instructor, RosterRequest{Students: []string{"s1"}})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/instructor/assignments", instructor, map[string]interface{}{"exerciseName": "Push-up", "dueDate": "2025-01-01"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]interface{}](t, w)["fields"], "repetitions")

	w = s.do(t, http.MethodPost, "/api/v1/instructor/assignments", instructor, map[string]interface{}{"exerciseName": "Push-up", "repetitions": 10, "dueDate": "2025-01-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[domain.ExerciseAssignment](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/student/assignments/"+created.ID+"/performed", student, domain.PerformanceInput{Duration: "2m", Repetition: 10, Accomplished: true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	performed := decode[domain.PerformedExercise](t, w)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/assignments", instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]domain.AssignmentView](t, w)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].CompletionCount)

	w = s.do(t, http.MethodDelete, "/api/v1/instructor/assignments/"+created.ID, instructor, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/instructor/assignments/"+created.ID+"/performed/"+performed.ID, instructor, map[string]bool{"accomplished": false})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/assignments/"+created.ID+"/performed", instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]domain.PerformedExerciseView](t, w)
	require.Len(t, records, 1)
	assert.False(t, records[0].Accomplished)
	assert.Equal(t, domain.UnknownStudentName, records[0].StudentName)

	w = s.do(t, http.MethodDelete, "/api/v1/instructor/assignments/"+created.ID+"/performed/"+performed.ID, instructor, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/instructor/assignments/"+created.ID, instructor, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/instructor/assignments/"+created.ID, instructor, map[string]interface{}{"repetitions": 5, "dueDate": "2025-01-01"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentCannotRecordOffRoster(t *testing.T) {
	s := newTestServer(t)
	instructor := s.token(t, "i1", "coach@dict.gov.ph")

	w := s.do(t, http.MethodPost, "/api/v1/instructor/assignments", instructor, map[string]interface{}{"exerciseName": "Squat", "isUnlimited": true, "dueDate": "2025-01-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.ExerciseAssignment](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/student/assignments/"+created.ID+"/performed", s.token(t, "s9", "s9@school.edu"), domain.PerformanceInput{Duration: "1m"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAnnouncementsAndStatus(t *testing.T) {
	s := newTestServer(t)
	instructor := s.token(t, "i1", "coach@dict.gov.ph")
	require.NoError(t, s.store.Students.Save(t.Context(), domain.NewStudentProfile(domain.NewAccount{UID: "s1", Email: "s1@school.edu", DisplayName: "Sam"})))

	s.do(t, http.MethodPut, "/api/v1/instructor/roster", instructor, RosterRequest{Students: []string{"s1"}})
	w := s.do(t, http.MethodPost, "/api/v1/instructor/announcements", instructor, domain.AnnouncementInput{Title: "Rain", Message: "Class moved indoors"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/student/announcements", s.token(t, "s1", "s1@school.edu"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Announcement](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Rain", list[0].Title)

	w = s.do(t, http.MethodPut, "/api/v1/instructor/students/s1/status", instructor, UpdateStatusRequest{Status: "graduated"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPut, "/api/v1/instructor/students/s1/status", instructor, UpdateStatusRequest{Status: domain.StatusActive})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/dashboard/stats", instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalStudents":1,"activeStudents":1,"rosterStudents":1,"assignedExercises":0}`, w.Body.String())
}

func TestRosterExport(t *testing.T) {
	s := newTestServer(t)
	instructor := s.token(t, "i1", "coach@dict.gov.ph")
	require.NoError(t, s.store.Students.Save(t.Context(), domain.NewStudentProfile(domain.NewAccount{UID: "s1", Email: "s1@school.edu", DisplayName: "Sam"})))
	s.do(t, http.MethodPut, "/api/v1/instructor/roster", instructor, RosterRequest{Students: []string{"s1"}})

	w := s.do(t, http.MethodGet, "/api/v1/instructor/roster/export?format=csv", instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "roster.csv")
	assert.Equal(t, "Name,Email,Year Level,Course,Status\nSam,s1@school.edu,Not Set,Not Set,pending\n", w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/instructor/roster/exports", instructor, PublishRequest{Format: "csv"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTrendRangeValidation(t *testing.T) {
	s := newTestServer(t)
	instructor := s.token(t, "i1", "coach@dict.gov.ph")

	w := s.do(t, http.MethodGet, "/api/v1/instructor/dashboard/trend?range=monthly", instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.TrendPoint](t, w), 12)

	w = s.do(t, http.MethodGet, "/api/v1/instructor/dashboard/trend?range=hourly", instructor, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/exercises/catalog", s.token(t, "s1", "s1@school.edu"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Push-up")
}
