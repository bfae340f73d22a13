package store

import (
	"context"

	"github.com/jeswin2007cs/scms/internal/model"
)

// Repository gives typed access to the documents. Every call reloads the
// whole document; nothing is cached between calls.
type Repository struct {
	docs Documents
}

// NewRepository creates a repo.
func NewRepository(docs Documents) *Repository {
	return &Repository{docs: docs}
}

// Documents returns the underlying backend.
func (r *Repository) Documents() Documents { return r.docs }

// Students returns every student in insertion order.
func (r *Repository) Students(ctx context.Context) ([]model.Student, error) {
	doc := struct {
		Students []model.Student `json:"students"`
	}{Students: []model.Student{}}
	if err := r.docs.Load(ctx, StudentsDoc, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Students), nil
}

// Admins returns every admin in insertion order.
func (r *Repository) Admins(ctx context.Context) ([]model.Admin, error) {
	doc := struct {
		Admins []model.Admin `json:"admins"`
	}{Admins: []model.Admin{}}
	if err := r.docs.Load(ctx, AdminsDoc, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Admins), nil
}

// Courses returns every course in insertion order.
func (r *Repository) Courses(ctx context.Context) ([]model.Course, error) {
	doc := struct {
		Courses []model.Course `json:"courses"`
	}{Courses: []model.Course{}}
	if err := r.docs.Load(ctx, CoursesDoc, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Courses), nil
}

// AttendanceRecords returns every attendance record.
func (r *Repository) AttendanceRecords(ctx context.Context) ([]model.AttendanceRecord, error) {
	doc := struct {
		Records []model.AttendanceRecord `json:"records"`
	}{Records: []model.AttendanceRecord{}}
	if err := r.docs.Load(ctx, AttendanceDoc, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Records), nil
}

// Leaves returns the leave list, newest first. Unlike the other documents
// leaves.json is a bare JSON array.
func (r *Repository) Leaves(ctx context.Context) ([]model.LeaveRequest, error) {
	leaves := []model.LeaveRequest{}
	if err := r.docs.Load(ctx, LeavesDoc, &leaves); err != nil {
		return nil, err
	}
	return nonNil(leaves), nil
}

// SaveLeaves replaces the whole leave list.
func (r *Repository) SaveLeaves(ctx context.Context, leaves []model.LeaveRequest) error {
	return r.docs.Save(ctx, LeavesDoc, nonNil(leaves))
}

// SaveStudents, SaveAdmins, SaveCourses and SaveAttendance write the wrapped
// documents. The web app never calls them; they exist for seeding and tests.
func (r *Repository) SaveStudents(ctx context.Context, students []model.Student) error {
	return r.docs.Save(ctx, StudentsDoc, map[string]any{"students": nonNil(students)})
}

func (r *Repository) SaveAdmins(ctx context.Context, admins []model.Admin) error {
	return r.docs.Save(ctx, AdminsDoc, map[string]any{"admins": nonNil(admins)})
}

func (r *Repository) SaveCourses(ctx context.Context, courses []model.Course) error {
	return r.docs.Save(ctx, CoursesDoc, map[string]any{"courses": nonNil(courses)})
}

func (r *Repository) SaveAttendance(ctx context.Context, records []model.AttendanceRecord) error {
	return r.docs.Save(ctx, AttendanceDoc, map[string]any{"records": nonNil(records)})
}

// nonNil keeps JSON output as [] rather than null for empty or explicit-null documents.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
