package attendance

import (
	"context"
	"fmt"
	"math"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

// SubjectAttendance is one course seen from the student's side. Code is the
// course id in string form.
type SubjectAttendance struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Present    int    `json:"present"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// StudentSummary is the part of the student record the attendance API exposes.
// Semester is always encoded as a JSON string, even when stored as a number.
type StudentSummary struct {
	Name       string         `json:"name"`
	Department string         `json:"department"`
	Semester   model.Semester `json:"semester"`
}

// Report is the /api/attendance payload.
type Report struct {
	Student  StudentSummary      `json:"student"`
	Subjects []SubjectAttendance `json:"subjects"`
}

// Percentage returns present/total as a whole percent, 0 when total is not
// positive. Halves round to even: 12.5 -> 12, 37.5 -> 38.
func Percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(present) / float64(total) * 100))
}

// MatchingCourses returns the courses of the student's department and
// semester, in course order.
func MatchingCourses(student model.Student, courses []model.Course) []model.Course {
	out := make([]model.Course, 0)
	for _, c := range courses {
		if c.Offered(student) {
			out = append(out, c)
		}
	}
	return out
}

// ComputeSubjectAttendance builds one entry per matching course. A course
// without a record counts as 0 of 0.
func ComputeSubjectAttendance(student model.Student, courses []model.Course, records []model.AttendanceRecord) []SubjectAttendance {
	subjects := make([]SubjectAttendance, 0)
	for _, c := range MatchingCourses(student, courses) {
		present, total := 0, 0
		if r, ok := findRecord(records, student.Gmail, c.ID); ok {
			present, total = r.Present, r.Total
		}
		subjects = append(subjects, SubjectAttendance{
			Code:       string(c.ID),
			Name:       c.Name,
			Present:    present,
			Total:      total,
			Percentage: Percentage(present, total),
		})
	}
	return subjects
}

func findRecord(records []model.AttendanceRecord, email string, courseID model.CourseID) (model.AttendanceRecord, bool) {
	for _, r := range records {
		if r.StudentEmail == email && r.CourseID == courseID {
			return r, true
		}
	}
	return model.AttendanceRecord{}, false
}

// Service loads courses and records and aggregates them per request.
type Service struct {
	repo *store.Repository
}

// NewService creates a service backed by a repository.
func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo}
}

// Report computes the attendance report for student.
func (s *Service) Report(ctx context.Context, student model.Student) (Report, error) {
	courses, err := s.repo.Courses(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("attendance: load courses: %w", err)
	}
	records, err := s.repo.AttendanceRecords(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("attendance: load records: %w", err)
	}
	return Report{
		Student: StudentSummary{
			Name:       student.Name,
			Department: student.Department,
			Semester:   student.Semester,
		},
		Subjects: ComputeSubjectAttendance(student, courses, records),
	}, nil
}

// Courses returns the courses the student is enrolled in by department and semester.
func (s *Service) Courses(ctx context.Context, student model.Student) ([]model.Course, error) {
	courses, err := s.repo.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("attendance: load courses: %w", err)
	}
	return MatchingCourses(student, courses), nil
}
