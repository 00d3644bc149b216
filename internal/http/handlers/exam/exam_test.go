package exam

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aanand-mishra/exam-portal/internal/config"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/storage/sqlite"
	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRouter serves the exam routes the way main.go registers them, so
// path values are populated.
func newRouter(t *testing.T, seed bool) (*http.ServeMux, *sqlite.SQLite) {
	t.Helper()

	db, err := sqlite.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	if seed {
		require.NoError(t, db.SeedExams(storage.DefaultExams()))
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /api/exams", GetList(db))
	router.HandleFunc("GET /api/exams/{id}", GetByID(db))
	return router, db
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetList(t *testing.T) {
	router, _ := newRouter(t, true)

	rec := get(router, "/api/exams")
	require.Equal(t, http.StatusOK, rec.Code)

	var exams []types.Exam
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exams))
	require.Len(t, exams, len(storage.DefaultExams()))
	assert.Equal(t, "SOAR13.0", exams[0].Code)
}

func TestGetListEmpty(t *testing.T) {
	router, _ := newRouter(t, false)

	rec := get(router, "/api/exams")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetByID(t *testing.T) {
	router, db := newRouter(t, true)
	soar, err := db.GetExamByCode("SOAR13.0")
	require.NoError(t, err)

	rec := get(router, "/api/exams/"+strconv.FormatInt(soar.ID, 10))
	require.Equal(t, http.StatusOK, rec.Code)

	var exam types.Exam
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&exam))
	assert.Equal(t, soar, exam)

	assert.Equal(t, http.StatusNotFound, get(router, "/api/exams/9999").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/exams/abc").Code)
}
