package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeswin2007cs/scms/internal/model"
	"github.com/jeswin2007cs/scms/internal/store"
)

func TestOverview_CountsEveryDocument(t *testing.T) {
	ctx := context.Background()
	docs, err := store.NewFileDocuments(t.TempDir())
	require.NoError(t, err)
	repo := store.NewRepository(docs)

	require.NoError(t, repo.SaveStudents(ctx, []model.Student{{Gmail: "a@x.com"}, {Gmail: "b@x.com"}}))
	require.NoError(t, repo.SaveCourses(ctx, []model.Course{{ID: "C1"}}))
	require.NoError(t, repo.SaveLeaves(ctx, []model.LeaveRequest{{ID: 3}, {ID: 2}, {ID: 1}}))
	require.NoError(t, repo.SaveAttendance(ctx, []model.AttendanceRecord{{StudentEmail: "a@x.com", CourseID: "C1"}}))

	ov, err := NewService(repo).Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, Stats{Students: 2, Courses: 1, Leaves: 3}, ov.Stats)
	assert.Len(t, ov.Students, 2)
	assert.Len(t, ov.Courses, 1)
	assert.Equal(t, int64(3), ov.Leaves[0].ID)
	assert.Len(t, ov.Attendance, 1)
}

func TestOverview_EmptyStore(t *testing.T) {
	docs, err := store.NewFileDocuments(t.TempDir())
	require.NoError(t, err)

	ov, err := NewService(store.NewRepository(docs)).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stats{}, ov.Stats)
	assert.NotNil(t, ov.Students)
	assert.NotNil(t, ov.Leaves)
}
