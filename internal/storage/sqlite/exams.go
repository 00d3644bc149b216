package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"
)

const examColumns = `id, code, title, admit_card_title, description, level,
	date, time, duration, fee, venue, badge, registration_open`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExam(row rowScanner) (types.Exam, error) {
	var exam types.Exam
	err := row.Scan(
		&exam.ID,
		&exam.Code,
		&exam.Title,
		&exam.AdmitCardTitle,
		&exam.Description,
		&exam.Level,
		&exam.Date,
		&exam.Time,
		&exam.Duration,
		&exam.Fee,
		&exam.Venue,
		&exam.Badge,
		&exam.RegistrationOpen,
	)
	return exam, err
}

// SeedExams fills an empty catalogue. An already populated catalogue is
// left untouched so admin edits survive restarts.
func (s *SQLite) SeedExams(exams []types.Exam) error {
	var count int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM exams").Scan(&count); err != nil {
		return fmt.Errorf("SeedExams: count: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("SeedExams: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO exams
			(code, title, admit_card_title, description, level, date, time,
			 duration, fee, venue, badge, registration_open)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("SeedExams: prepare: %w", err)
	}
	defer stmt.Close()

	for _, exam := range exams {
		if _, err := stmt.Exec(
			exam.Code, exam.Title, exam.AdmitCardTitle, exam.Description, exam.Level,
			exam.Date, exam.Time, exam.Duration, exam.Fee, exam.Venue, exam.Badge,
			exam.RegistrationOpen,
		); err != nil {
			return fmt.Errorf("SeedExams: insert %s: %w", exam.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("SeedExams: commit: %w", err)
	}

	return nil
}

// GetExams returns the whole catalogue ordered by id.
func (s *SQLite) GetExams() ([]types.Exam, error) {
	rows, err := s.Db.Query("SELECT " + examColumns + " FROM exams ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("GetExams: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty catalogue encodes as [] rather than null.
	exams := make([]types.Exam, 0)

	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, fmt.Errorf("GetExams: scan row: %w", err)
		}
		exams = append(exams, exam)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetExams: rows iteration: %w", err)
	}

	return exams, nil
}

// GetExamByID fetches one exam by primary key.
func (s *SQLite) GetExamByID(id int64) (types.Exam, error) {
	exam, err := scanExam(s.Db.QueryRow(
		"SELECT "+examColumns+" FROM exams WHERE id = ? LIMIT 1", id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Exam{}, fmt.Errorf("no exam found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Exam{}, fmt.Errorf("GetExamByID: scan: %w", err)
	}

	return exam, nil
}

// GetExamByCode fetches one exam by its registration code.
func (s *SQLite) GetExamByCode(code string) (types.Exam, error) {
	exam, err := scanExam(s.Db.QueryRow(
		"SELECT "+examColumns+" FROM exams WHERE code = ? LIMIT 1", code,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Exam{}, fmt.Errorf("no exam found with code %s: %w", code, storage.ErrNotFound)
		}
		return types.Exam{}, fmt.Errorf("GetExamByCode: scan: %w", err)
	}

	return exam, nil
}
