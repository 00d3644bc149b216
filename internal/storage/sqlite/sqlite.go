// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql as
// a side effect; the package is also used directly for its error codes.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/config"
	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// schema is idempotent and runs on every startup.
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id            TEXT     PRIMARY KEY,
		name          TEXT     NOT NULL,
		email         TEXT     NOT NULL UNIQUE COLLATE NOCASE,
		phone         TEXT     NOT NULL DEFAULT '',
		department    TEXT     NOT NULL DEFAULT '',
		semester      TEXT     NOT NULL DEFAULT '',
		roll_number   TEXT     NOT NULL DEFAULT '',
		password_hash TEXT     NOT NULL,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exams (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		code              TEXT    NOT NULL UNIQUE,
		title             TEXT    NOT NULL,
		admit_card_title  TEXT    NOT NULL,
		description       TEXT    NOT NULL DEFAULT '',
		level             TEXT    NOT NULL DEFAULT '',
		date              TEXT    NOT NULL,
		time              TEXT    NOT NULL,
		duration          TEXT    NOT NULL DEFAULT '',
		fee               TEXT    NOT NULL DEFAULT '',
		venue             TEXT    NOT NULL DEFAULT '',
		badge             TEXT    NOT NULL DEFAULT '',
		registration_open INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS registrations (
		id                   INTEGER  PRIMARY KEY AUTOINCREMENT,
		student_id           TEXT     NOT NULL REFERENCES students(id),
		exam_id              INTEGER  NOT NULL REFERENCES exams(id),
		reg_number           TEXT     NOT NULL,
		registration_date    DATETIME NOT NULL,
		status               TEXT     NOT NULL DEFAULT 'Pending',
		admit_card_generated INTEGER  NOT NULL DEFAULT 0,
		UNIQUE (student_id, exam_id)
	);
`

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// ─────────────────────────────────────────────────────────────────────────────
// RegisterStudent inserts the student row and its Pending registration in
// a single transaction, so a failed registration never leaves an orphaned
// account behind.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) RegisterStudent(student types.Student, examID int64, regNumber string) (types.Registration, error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO students
			(id, name, email, phone, department, semester, roll_number,
			 password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		student.ID, student.Name, strings.ToLower(student.Email),
		student.Phone, student.Department, student.Semester, student.RollNumber,
		student.PasswordHash, student.CreatedAt, student.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Registration{}, storage.ErrEmailTaken
		}
		return types.Registration{}, fmt.Errorf("RegisterStudent: insert student: %w", err)
	}

	reg := types.Registration{
		StudentID:        student.ID,
		ExamID:           examID,
		RegNumber:        regNumber,
		RegistrationDate: student.CreatedAt,
		Status:           types.StatusPending,
	}

	result, err := tx.Exec(`
		INSERT INTO registrations
			(student_id, exam_id, reg_number, registration_date, status, admit_card_generated)
		VALUES (?, ?, ?, ?, ?, 0)`,
		reg.StudentID, reg.ExamID, reg.RegNumber, reg.RegistrationDate, reg.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Registration{}, storage.ErrAlreadyRegistered
		}
		return types.Registration{}, fmt.Errorf("RegisterStudent: insert registration: %w", err)
	}

	reg.ID, err = result.LastInsertId()
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: commit: %w", err)
	}

	return reg, nil
}

const studentColumns = `id, name, email, phone, department, semester, roll_number,
	password_hash, created_at, updated_at`

func scanStudent(row rowScanner) (types.Student, error) {
	var student types.Student
	err := row.Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Phone,
		&student.Department,
		&student.Semester,
		&student.RollNumber,
		&student.PasswordHash,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	return student, err
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(id string) (types.Student, error) {
	student, err := scanStudent(s.Db.QueryRow(
		"SELECT "+studentColumns+" FROM students WHERE id = ? LIMIT 1", id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with id %s: %w", id, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudentByEmail looks a student up by email. The column is declared
// COLLATE NOCASE so the match ignores case.
func (s *SQLite) GetStudentByEmail(email string) (types.Student, error) {
	student, err := scanStudent(s.Db.QueryRow(
		"SELECT "+studentColumns+" FROM students WHERE email = ? LIMIT 1", email,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, fmt.Errorf("no student found with email %s: %w", email, storage.ErrNotFound)
		}
		return types.Student{}, fmt.Errorf("GetStudentByEmail: scan: %w", err)
	}

	return student, nil
}

// UpdateStudentProfile replaces the editable profile fields and returns
// the record as stored. The roll number doubles as the registration
// number, so registrations are rewritten alongside it.
func (s *SQLite) UpdateStudentProfile(id string, update types.ProfileUpdate, at time.Time) (types.Student, error) {
	tx, err := s.Db.Begin()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentProfile: begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE students
		SET name = ?, phone = ?, department = ?, semester = ?,
			roll_number = COALESCE(NULLIF(?, ''), roll_number), updated_at = ?
		WHERE id = ?`,
		update.Name, update.Phone, update.Department, update.Semester, update.RollNumber, at, id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentProfile: exec: %w", err)
	}

	if err := requireOneRow(result); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentProfile: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE registrations
		SET reg_number = (SELECT roll_number FROM students WHERE id = ?)
		WHERE student_id = ?`,
		id, id,
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentProfile: sync registrations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentProfile: commit: %w", err)
	}

	return s.GetStudentByID(id)
}

// UpdatePasswordHash stores a new bcrypt hash for the student.
func (s *SQLite) UpdatePasswordHash(id string, hash string, at time.Time) error {
	result, err := s.Db.Exec(
		"UPDATE students SET password_hash = ?, updated_at = ? WHERE id = ?",
		hash, at, id,
	)
	if err != nil {
		return fmt.Errorf("UpdatePasswordHash: exec: %w", err)
	}

	if err := requireOneRow(result); err != nil {
		return fmt.Errorf("UpdatePasswordHash: %w", err)
	}

	return nil
}

// requireOneRow turns "zero rows affected" into storage.ErrNotFound.
func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
