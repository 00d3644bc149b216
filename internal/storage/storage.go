// Package storage defines the Storage interface: a contract that any
// database backend must satisfy to work with this application.
//
// Handlers depend only on this interface, so switching databases means
// implementing it for the new backend and changing one line in main.go.
package storage

import (
	"errors"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/types"
)

// Sentinel errors returned by every implementation. Callers compare with
// errors.Is so wrapped errors still match.
var (
	ErrNotFound          = errors.New("record not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrAlreadyRegistered = errors.New("student already registered for this exam")
)

// Storage is the database contract.
type Storage interface {
	// RegisterStudent inserts a new account and its Pending registration
	// for examID in one transaction. Returns ErrEmailTaken when the email
	// is already in use.
	RegisterStudent(student types.Student, examID int64, regNumber string) (types.Registration, error)

	// AddRegistration signs an existing student up for another exam. The
	// registration number is the student's current roll number. Returns
	// ErrAlreadyRegistered for a repeat of the same exam.
	AddRegistration(studentID string, examID int64, at time.Time) (types.Registration, error)

	// GetStudentByID fetches a student by primary key or returns ErrNotFound.
	GetStudentByID(id string) (types.Student, error)

	// GetStudentByEmail fetches a student by (case-insensitive) email or
	// returns ErrNotFound.
	GetStudentByEmail(email string) (types.Student, error)

	// UpdateStudentProfile replaces the editable profile fields and
	// stamps updated_at. An empty roll number keeps the stored one; a new
	// one is copied to every registration of the student in the same
	// transaction. Returns the stored record.
	UpdateStudentProfile(id string, update types.ProfileUpdate, at time.Time) (types.Student, error)

	// UpdatePasswordHash replaces the stored bcrypt hash.
	UpdatePasswordHash(id string, hash string, at time.Time) error

	// SeedExams inserts the given exams when the catalogue is empty.
	SeedExams(exams []types.Exam) error

	// GetExams returns the catalogue ordered by id. Never nil.
	GetExams() ([]types.Exam, error)

	// GetExamByID fetches one exam or returns ErrNotFound.
	GetExamByID(id int64) (types.Exam, error)

	// GetExamByCode fetches one exam by its code (e.g. "SOAR13.0").
	GetExamByCode(code string) (types.Exam, error)

	// GetRegistrationByStudent returns the student's most recent
	// registration or ErrNotFound.
	GetRegistrationByStudent(studentID string) (types.Registration, error)

	// UpdateRegistrationStatus sets the review status of a registration.
	UpdateRegistrationStatus(id int64, status string) (types.Registration, error)

	// MarkAdmitCardGenerated flags that an admit card has been issued.
	MarkAdmitCardGenerated(id int64) error
}
