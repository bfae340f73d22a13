package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemester_DecodesStringsAndNumbers(t *testing.T) {
	var doc struct {
		A Semester `json:"a"`
		B Semester `json:"b"`
		C Semester `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"3","b":3,"c":null}`), &doc))

	assert.Equal(t, Semester("3"), doc.A)
	assert.Equal(t, doc.A, doc.B)
	assert.Equal(t, Semester(""), doc.C)
}

func TestSemester_RejectsObjects(t *testing.T) {
	var s Semester
	assert.Error(t, json.Unmarshal([]byte(`{"n":3}`), &s))
}

func TestCourseID_DecodesStringsAndNumbers(t *testing.T) {
	var courses struct {
		Courses []Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"courses":[{"id":101,"name":"A"},{"id":"C1","name":"B"}]}`), &courses))
	assert.Equal(t, CourseID("101"), courses.Courses[0].ID)
	assert.Equal(t, CourseID("C1"), courses.Courses[1].ID)

	var rec AttendanceRecord
	require.NoError(t, json.Unmarshal([]byte(`{"studentEmail":"a@x.com","courseId":101,"present":1,"total":2}`), &rec))
	assert.Equal(t, courses.Courses[0].ID, rec.CourseID)

	var bad CourseID
	assert.Error(t, json.Unmarshal([]byte(`[101]`), &bad))
}

func TestCourse_EncodesIDAndSemesterAsStrings(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"id":101,"name":"A","department":"CS","semester":3}`), &c))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"101","name":"A","department":"CS","semester":"3"}`, string(out))
}

func TestCourseOffered(t *testing.T) {
	student := Student{Department: "CS", Semester: "3"}

	assert.True(t, Course{Department: "CS", Semester: "3"}.Offered(student))
	assert.False(t, Course{Department: "EE", Semester: "3"}.Offered(student))
	assert.False(t, Course{Department: "CS", Semester: "4"}.Offered(student))
}

func TestLeaveRequest_KeepsCallerFields(t *testing.T) {
	in := `{"id":1700000000123,"studentEmail":"a@x.com","status":"Pending","type":"Sick","from":"2024-01-01","days":2}`

	var l LeaveRequest
	require.NoError(t, json.Unmarshal([]byte(in), &l))
	assert.Equal(t, int64(1700000000123), l.ID)
	assert.Equal(t, "a@x.com", l.StudentEmail)
	assert.Equal(t, LeavePending, l.Status)
	assert.Equal(t, "Sick", l.Fields["type"])
	assert.Len(t, l.Fields, 3)

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestLeaveRequest_ReservedKeysWinOverFields(t *testing.T) {
	l := LeaveRequest{
		ID:           42,
		StudentEmail: "a@x.com",
		Status:       LeavePending,
		Fields:       map[string]any{"status": "Approved", "reason": "trip"},
	}

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":42,"studentEmail":"a@x.com","status":"Pending","reason":"trip"}`, string(out))
}

func TestLeaveRequest_RejectsNonObjects(t *testing.T) {
	var l LeaveRequest
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &l))
	assert.Error(t, json.Unmarshal([]byte(`null`), &l))
	assert.Error(t, json.Unmarshal([]byte(`{"id":"abc"}`), &l))
}
