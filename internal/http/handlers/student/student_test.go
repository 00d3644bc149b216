package student

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/admitcard"
	"github.com/aanand-mishra/exam-portal/internal/auth"
	"github.com/aanand-mishra/exam-portal/internal/config"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/storage/sqlite"
	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/aanand-mishra/exam-portal/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
}

// fixture is a database holding one signed-up student.
type fixture struct {
	db  *sqlite.SQLite
	reg types.Registration
	ctx context.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.SeedExams(storage.DefaultExams()))

	exam, err := db.GetExamByCode("SOAR13.0")
	require.NoError(t, err)

	student := types.Student{
		ID:           "stu-1",
		Name:         "Riya Das",
		Email:        "riya@nita.ac.in",
		Phone:        "9876543210",
		Department:   "Production Engineering",
		Semester:     "2",
		RollNumber:   "23UPE026",
		PasswordHash: "hash",
		CreatedAt:    fixedNow(),
		UpdatedAt:    fixedNow(),
	}
	reg, err := db.RegisterStudent(student, exam.ID, "23UPE026")
	require.NoError(t, err)

	ctx := auth.WithClaims(context.Background(), auth.Claims{StudentID: student.ID, Email: student.Email})
	return fixture{db: db, reg: reg, ctx: ctx}
}

func (f fixture) approve(t *testing.T) {
	t.Helper()
	_, err := f.db.UpdateRegistrationStatus(f.reg.ID, types.StatusApproved)
	require.NoError(t, err)
}

func do(ctx context.Context, handler http.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

// attachmentName parses the download name out of Content-Disposition.
func attachmentName(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", disposition)
	return params["filename"]
}

// recordingGenerator renders with a real generator and keeps the input.
type recordingGenerator struct {
	gen  *admitcard.Generator
	last types.StudentRecord
}

func (g *recordingGenerator) Generate(ctx context.Context, rec types.StudentRecord) (*admitcard.AdmitCard, error) {
	g.last = rec
	return g.gen.Generate(ctx, rec)
}

// failingGenerator stands in for a generator whose stamp fetch failed.
type failingGenerator struct{ err error }

func (f failingGenerator) Generate(context.Context, types.StudentRecord) (*admitcard.AdmitCard, error) {
	return nil, f.err
}

func newGenerator() *admitcard.Generator {
	return admitcard.NewGenerator(
		admitcard.Layout{Organization: "ANARC ROBOTICS CLUB", Institution: "NIT AGARTALA"},
		nil,
		fixedNow,
	)
}

func TestGetProfile(t *testing.T) {
	f := newFixture(t)

	rec := do(f.ctx, GetProfile(f.db), http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var student types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&student))
	assert.Equal(t, "Riya Das", student.Name)
	assert.Empty(t, student.PasswordHash)
}

func TestGetProfileUnknownStudent(t *testing.T) {
	f := newFixture(t)
	ctx := auth.WithClaims(context.Background(), auth.Claims{StudentID: "gone"})

	rec := do(ctx, GetProfile(f.db), http.MethodGet, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	handler := UpdateProfile(f.db, fixedNow)

	rec := do(f.ctx, handler, http.MethodPut, `{"name":"Riya D.","semester":"3","department":"Physics"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var student types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&student))
	assert.Equal(t, "Riya D.", student.Name)
	assert.Equal(t, "3", student.Semester)
	assert.Equal(t, "riya@nita.ac.in", student.Email)

	rec = do(f.ctx, handler, http.MethodPut, `{"name":"Riya Das","semester":"9"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)

	rec := do(f.ctx, GetDashboard(f.db), http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dash Dashboard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dash))
	assert.Equal(t, "ANARC2523UPE26", dash.RegistrationCode)
	assert.Equal(t, "SOAR13.0", dash.Exam.Code)
	assert.Equal(t, types.StatusPending, dash.Registration.Status)
	assert.False(t, dash.HasAdmitCard)

	f.approve(t)
	rec = do(f.ctx, GetDashboard(f.db), http.MethodGet, "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dash))
	assert.True(t, dash.HasAdmitCard)
}

func TestNewRecord(t *testing.T) {
	student := types.Student{Name: "Riya Das", Email: "riya@nita.ac.in", RollNumber: "23UPE026"}
	exam := storage.DefaultExams()[0]

	rec := NewRecord(student, exam)

	assert.Equal(t, "23UPE026", rec.RegNo)
	assert.Equal(t, rec.RegNo, rec.RollNumber)
	assert.Equal(t, "SOAR 13.O EXAMINATION", rec.ExamName)
	assert.Equal(t, "March 22, 2025", rec.ExamDate)
	assert.Equal(t, "12:30 PM - 1:30 PM", rec.ExamTime)
	assert.Equal(t, "CIVIL DEPARTMENT, NITA", rec.Venue)
}

func TestDownloadAdmitCardPending(t *testing.T) {
	f := newFixture(t)

	rec := do(f.ctx, DownloadAdmitCard(f.db, newGenerator()), http.MethodGet, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, ErrAdmitCardUnavailable.Error(), errorMessage(t, rec))

	reg, err := f.db.GetRegistrationByStudent("stu-1")
	require.NoError(t, err)
	assert.False(t, reg.AdmitCardGenerated)
}

func TestDownloadAdmitCard(t *testing.T) {
	f := newFixture(t)
	f.approve(t)

	rec := do(f.ctx, DownloadAdmitCard(f.db, newGenerator()), http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "23UPE026_admit_card.pdf", attachmentName(t, rec))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	reg, err := f.db.GetRegistrationByStudent("stu-1")
	require.NoError(t, err)
	assert.True(t, reg.AdmitCardGenerated)
}

func TestDownloadAdmitCardIsRepeatable(t *testing.T) {
	f := newFixture(t)
	f.approve(t)
	handler := DownloadAdmitCard(f.db, newGenerator())

	first := do(f.ctx, handler, http.MethodGet, "")
	second := do(f.ctx, handler, http.MethodGet, "")

	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestDownloadAdmitCardGeneratorFailure(t *testing.T) {
	f := newFixture(t)
	f.approve(t)

	gen := failingGenerator{err: errors.New("admitcard: fetch stamp: unexpected status 503")}
	rec := do(f.ctx, DownloadAdmitCard(f.db, gen), http.MethodGet, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "Admit card not available")

	reg, err := f.db.GetRegistrationByStudent("stu-1")
	require.NoError(t, err)
	assert.False(t, reg.AdmitCardGenerated)
}

func TestDownloadAdmitCardAfterRollNumberChange(t *testing.T) {
	f := newFixture(t)

	rec := do(f.ctx, UpdateProfile(f.db, fixedNow), http.MethodPut,
		`{"name":"Riya Das","rollNumber":"23UPE099","phone":"9876543210"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.approve(t)

	gen := &recordingGenerator{gen: newGenerator()}
	rec = do(f.ctx, DownloadAdmitCard(f.db, gen), http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "23UPE099_admit_card.pdf", attachmentName(t, rec))
	assert.Equal(t, "23UPE099", gen.last.RegNo)
	assert.Equal(t, "23UPE099", gen.last.RollNumber)

	var dash Dashboard
	rec = do(f.ctx, GetDashboard(f.db), http.MethodGet, "")
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dash))
	assert.Equal(t, admitcard.RegistrationCode("23UPE099"), dash.RegistrationCode)
	assert.Equal(t, "23UPE099", dash.Registration.RegNumber)
}

func TestDownloadAdmitCardNonASCIIFilename(t *testing.T) {
	f := newFixture(t)
	_, err := f.db.UpdateStudentProfile("stu-1", types.ProfileUpdate{
		Name:       "Riya Das",
		RollNumber: "23ÜPE026",
	}, fixedNow())
	require.NoError(t, err)
	f.approve(t)

	rec := do(f.ctx, DownloadAdmitCard(f.db, newGenerator()), http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	header := rec.Header().Get("Content-Disposition")
	assert.NotContains(t, header, `\u`)
	assert.Equal(t, "23ÜPE026_admit_card.pdf", attachmentName(t, rec))
}

func TestRegisterForExam(t *testing.T) {
	f := newFixture(t)

	// Open a second exam so there is something new to register for.
	_, err := f.db.Db.Exec("UPDATE exams SET registration_open = 1 WHERE code = 'IOT'")
	require.NoError(t, err)
	handler := RegisterForExam(f.db, fixedNow)

	rec := do(f.ctx, handler, http.MethodPost, `{"examType":"IOT"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var reg types.Registration
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reg))
	assert.Equal(t, "23UPE026", reg.RegNumber)
	assert.Equal(t, types.StatusPending, reg.Status)

	rec = do(f.ctx, handler, http.MethodPost, `{"examType":"IOT"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, storage.ErrAlreadyRegistered.Error(), errorMessage(t, rec))

	rec = do(f.ctx, handler, http.MethodPost, `{"examType":"ARDUINO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	gone := auth.WithClaims(context.Background(), auth.Claims{StudentID: "gone"})
	rec = do(gone, handler, http.MethodPost, `{"examType":"IOT"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
