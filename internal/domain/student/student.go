// Package student provides the student directory record.
package student

import (
	"fmt"
	"time"
)

// Student represents a directory entry. Pure data record: no lifecycle
// beyond create/update/delete.
type Student struct {
	id          uint
	studentName string
	block       string
	yearLevel   string
	email       string
	phone       string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewStudent creates a new directory entry.
func NewStudent(studentName, block, yearLevel, email, phone string) (*Student, error) {
	if studentName == "" {
		return nil, fmt.Errorf("student name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("student email is required")
	}

	now := time.Now()
	return &Student{
		studentName: studentName,
		block:       block,
		yearLevel:   yearLevel,
		email:       email,
		phone:       phone,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructStudent reconstructs a student from persistence.
func ReconstructStudent(id uint, studentName, block, yearLevel, email, phone string, createdAt, updatedAt time.Time) (*Student, error) {
	if id == 0 {
		return nil, fmt.Errorf("student ID cannot be zero")
	}
	if studentName == "" {
		return nil, fmt.Errorf("student name is required")
	}

	return &Student{
		id:          id,
		studentName: studentName,
		block:       block,
		yearLevel:   yearLevel,
		email:       email,
		phone:       phone,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ID returns the student ID.
func (s *Student) ID() uint { return s.id }

// SetID sets the ID after persistence assigns one.
func (s *Student) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("student ID already set")
	}
	if id == 0 {
		return fmt.Errorf("student ID cannot be zero")
	}
	s.id = id
	return nil
}

// StudentName returns the student's name.
func (s *Student) StudentName() string { return s.studentName }

// Block returns the block assignment.
func (s *Student) Block() string { return s.block }

// YearLevel returns the year level.
func (s *Student) YearLevel() string { return s.yearLevel }

// Email returns the email address.
func (s *Student) Email() string { return s.email }

// Phone returns the phone number.
func (s *Student) Phone() string { return s.phone }

// CreatedAt returns the creation timestamp.
func (s *Student) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update timestamp.
func (s *Student) UpdatedAt() time.Time { return s.updatedAt }

// Update replaces the record's attributes.
func (s *Student) Update(studentName, block, yearLevel, email, phone string) error {
	if studentName == "" {
		return fmt.Errorf("student name is required")
	}
	if email == "" {
		return fmt.Errorf("student email is required")
	}
	s.studentName = studentName
	s.block = block
	s.yearLevel = yearLevel
	s.email = email
	s.phone = phone
	s.updatedAt = time.Now()
	return nil
}
