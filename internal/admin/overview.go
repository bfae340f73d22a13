package admin

import (
	"context"
	"fmt"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

// Stats are the counts shown on the admin dashboard cards.
type Stats struct {
	Students int `json:"students"`
	Courses  int `json:"courses"`
	Leaves   int `json:"leaves"`
}

// Overview is everything the admin dashboard shows: counts plus full tables.
type Overview struct {
	Stats      Stats                    `json:"stats"`
	Students   []model.Student          `json:"students"`
	Courses    []model.Course           `json:"courses"`
	Leaves     []model.LeaveRequest     `json:"leaves"`
	Attendance []model.AttendanceRecord `json:"attendance"`
}

// Service loads the admin overview.
type Service struct {
	repo *store.Repository
}

func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo}
}

// Overview loads all four documents and counts them.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	students, err := s.repo.Students(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("admin: load students: %w", err)
	}
	courses, err := s.repo.Courses(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("admin: load courses: %w", err)
	}
	leaves, err := s.repo.Leaves(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("admin: load leaves: %w", err)
	}
	records, err := s.repo.AttendanceRecords(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("admin: load attendance: %w", err)
	}

	return Overview{
		Stats: Stats{
			Students: len(students),
			Courses:  len(courses),
			Leaves:   len(leaves),
		},
		Students:   students,
		Courses:    courses,
		Leaves:     leaves,
		Attendance: records,
	}, nil
}
