// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and the admit card generator can all import types
// without depending on each other.
package types

import "time"

// Registration statuses. Only an Approved registration can download an
// admit card.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Departments lists the values accepted by the "department" validation tag.
var Departments = []string{
	"Computer Science Engineering",
	"Electronics & Communication Engineering",
	"Electronics & Instrumentation Engineering",
	"Electrical Engineering",
	"Mechanical Engineering",
	"Civil Engineering",
	"Chemical Engineering",
	"Production Engineering",
	"Bio Engineering",
	"Physics",
	"Chemistry",
	"Mathematics",
	"Other",
}

// Student is a registered account together with its profile.
// PasswordHash never leaves the server (json:"-").
type Student struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Department   string    `json:"department"`
	Semester     string    `json:"semester"`
	RollNumber   string    `json:"rollNumber"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Exam is one entry of the examination catalogue.
type Exam struct {
	ID               int64  `json:"id"`
	Code             string `json:"code"`
	Title            string `json:"title"`
	AdmitCardTitle   string `json:"admitCardTitle"`
	Description      string `json:"description"`
	Level            string `json:"level"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Duration         string `json:"duration"`
	Fee              string `json:"fee"`
	Venue            string `json:"venue"`
	Badge            string `json:"badge,omitempty"`
	RegistrationOpen bool   `json:"registrationOpen"`
}

// Registration links a student to the exam they signed up for.
type Registration struct {
	ID                 int64     `json:"id"`
	StudentID          string    `json:"studentId"`
	ExamID             int64     `json:"examId"`
	RegNumber          string    `json:"regNumber"`
	RegistrationDate   time.Time `json:"registrationDate"`
	Status             string    `json:"status"`
	AdmitCardGenerated bool      `json:"admitCardGenerated"`
}

// StudentRecord is everything printed on an admit card. It is assembled
// right before generation and never mutated by the generator.
type StudentRecord struct {
	Name       string
	RegNo      string
	Email      string
	Phone      string
	Department string
	Semester   string
	RollNumber string
	ExamName   string
	ExamDate   string
	ExamTime   string
	Venue      string
}

// SignupRequest is the body of POST /api/auth/signup.
//
// validate:"..." tags are checked by go-playground/validator; "department"
// and "phone" are custom tags registered in package validate.
type SignupRequest struct {
	Name            string `json:"name"            validate:"required,min=3"`
	Email           string `json:"email"           validate:"required,email"`
	Phone           string `json:"phone"           validate:"required,phone"`
	Department      string `json:"department"      validate:"required,department"`
	Semester        string `json:"semester"        validate:"required,oneof=1 2 3 4"`
	RollNumber      string `json:"rollNumber"      validate:"required,min=7"`
	ExamType        string `json:"examType"        validate:"required"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	AgreeTerms      bool   `json:"agreeTerms"      validate:"required"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of PUT /api/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// ExamRegistrationRequest is the body of POST /api/me/registrations.
type ExamRegistrationRequest struct {
	ExamType string `json:"examType" validate:"required"`
}

// ProfileUpdate is the body of PUT /api/me. Email is not editable and an
// empty RollNumber keeps the current one.
type ProfileUpdate struct {
	Name       string `json:"name"       validate:"required,min=3"`
	Phone      string `json:"phone"      validate:"omitempty,phone"`
	Department string `json:"department" validate:"omitempty,department"`
	Semester   string `json:"semester"   validate:"omitempty,oneof=1 2 3 4"`
	RollNumber string `json:"rollNumber" validate:"omitempty,min=7"`
}

// StatusUpdate is the body of PUT /api/registrations/{id}/status.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=Pending Approved Rejected"`
}
