package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/storage"
	"github.com/aanand-mishra/exam-portal/internal/types"
)

const registrationColumns = `id, student_id, exam_id, reg_number,
	registration_date, status, admit_card_generated`

func scanRegistration(row rowScanner) (types.Registration, error) {
	var reg types.Registration
	err := row.Scan(
		&reg.ID,
		&reg.StudentID,
		&reg.ExamID,
		&reg.RegNumber,
		&reg.RegistrationDate,
		&reg.Status,
		&reg.AdmitCardGenerated,
	)
	return reg, err
}

// AddRegistration inserts a Pending registration for a student who
// already has an account. The registration number is read from the
// student row inside the insert, so it always matches the roll number.
func (s *SQLite) AddRegistration(studentID string, examID int64, at time.Time) (types.Registration, error) {
	result, err := s.Db.Exec(`
		INSERT INTO registrations
			(student_id, exam_id, reg_number, registration_date, status, admit_card_generated)
		SELECT id, ?, roll_number, ?, ?, 0 FROM students WHERE id = ?`,
		examID, at, types.StatusPending, studentID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Registration{}, storage.ErrAlreadyRegistered
		}
		return types.Registration{}, fmt.Errorf("AddRegistration: insert: %w", err)
	}

	if err := requireOneRow(result); err != nil {
		return types.Registration{}, fmt.Errorf("AddRegistration: student %s: %w", studentID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Registration{}, fmt.Errorf("AddRegistration: last insert id: %w", err)
	}

	return s.getRegistrationByID(id)
}

// GetRegistrationByStudent returns the newest registration of a student.
func (s *SQLite) GetRegistrationByStudent(studentID string) (types.Registration, error) {
	reg, err := scanRegistration(s.Db.QueryRow(
		"SELECT "+registrationColumns+` FROM registrations
		WHERE student_id = ? ORDER BY id DESC LIMIT 1`, studentID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Registration{}, fmt.Errorf("no registration for student %s: %w", studentID, storage.ErrNotFound)
		}
		return types.Registration{}, fmt.Errorf("GetRegistrationByStudent: scan: %w", err)
	}

	return reg, nil
}

func (s *SQLite) getRegistrationByID(id int64) (types.Registration, error) {
	reg, err := scanRegistration(s.Db.QueryRow(
		"SELECT "+registrationColumns+" FROM registrations WHERE id = ? LIMIT 1", id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Registration{}, fmt.Errorf("no registration found with id %d: %w", id, storage.ErrNotFound)
		}
		return types.Registration{}, fmt.Errorf("getRegistrationByID: scan: %w", err)
	}

	return reg, nil
}

// UpdateRegistrationStatus sets the review status and returns the
// updated row.
func (s *SQLite) UpdateRegistrationStatus(id int64, status string) (types.Registration, error) {
	result, err := s.Db.Exec("UPDATE registrations SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return types.Registration{}, fmt.Errorf("UpdateRegistrationStatus: exec: %w", err)
	}

	if err := requireOneRow(result); err != nil {
		return types.Registration{}, fmt.Errorf("UpdateRegistrationStatus: %w", err)
	}

	return s.getRegistrationByID(id)
}

// MarkAdmitCardGenerated records that an admit card was issued.
func (s *SQLite) MarkAdmitCardGenerated(id int64) error {
	result, err := s.Db.Exec("UPDATE registrations SET admit_card_generated = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("MarkAdmitCardGenerated: exec: %w", err)
	}

	if err := requireOneRow(result); err != nil {
		return fmt.Errorf("MarkAdmitCardGenerated: %w", err)
	}

	return nil
}
