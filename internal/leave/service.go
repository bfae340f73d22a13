package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

// Service records leave applications in the leave list.
// Submit reads, prepends and rewrites the whole list without locking, so
// two concurrent submissions can lose one of them.
type Service struct {
	repo *store.Repository
	now  func() time.Time
}

// NewService creates a service backed by a repository.
func NewService(repo *store.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit stores a new pending leave for student at the head of the list.
// The id is the submission time in milliseconds; if that would not be
// newer than the current head, head+1 is used so ids stay unique.
func (s *Service) Submit(ctx context.Context, student model.Student, payload map[string]any) (model.LeaveRequest, error) {
	leaves, err := s.repo.Leaves(ctx)
	if err != nil {
		return model.LeaveRequest{}, fmt.Errorf("leave: load: %w", err)
	}

	id := s.now().UnixMilli()
	if len(leaves) > 0 && leaves[0].ID >= id {
		id = leaves[0].ID + 1
	}

	fields := make(map[string]any, len(payload))
	for k, v := range payload {
		fields[k] = v
	}
	delete(fields, "id")
	delete(fields, "studentEmail")
	delete(fields, "status")

	req := model.LeaveRequest{
		ID:           id,
		StudentEmail: student.Gmail,
		Status:       model.LeavePending,
		Fields:       fields,
	}

	leaves = append([]model.LeaveRequest{req}, leaves...)
	if err := s.repo.SaveLeaves(ctx, leaves); err != nil {
		return model.LeaveRequest{}, fmt.Errorf("leave: save: %w", err)
	}
	return req, nil
}

// History returns the student's own leaves, newest first.
func (s *Service) History(ctx context.Context, gmail string) ([]model.LeaveRequest, error) {
	leaves, err := s.repo.Leaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("leave: load: %w", err)
	}
	own := make([]model.LeaveRequest, 0)
	for _, l := range leaves {
		if l.StudentEmail == gmail {
			own = append(own, l)
		}
	}
	return own, nil
}
