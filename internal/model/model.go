package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Semester is a semester number normalized to its string form.
// Documents store it either as a JSON string or a JSON number; both decode
// to the same value so comparisons are plain string equality.
type Semester string

// UnmarshalJSON accepts "3" and 3 alike.
func (s *Semester) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		return fmt.Errorf("semester: %w", err)
	}
	*s = Semester(v)
	return nil
}

// CourseID identifies a course. Like Semester it may be stored as a string
// or a number and is normalized to its string form.
type CourseID string

// UnmarshalJSON accepts "101" and 101 alike.
func (id *CourseID) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		return fmt.Errorf("course id: %w", err)
	}
	*id = CourseID(v)
	return nil
}

// decodeScalar returns the string form of a JSON string or number; null is "".
func decodeScalar(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return "", err
		}
		return strings.TrimSpace(str), nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return "", err
	}
	return num.String(), nil
}

// Student is a student credential and profile record.
type Student struct {
	Gmail      string   `json:"gmail"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Semester   Semester `json:"semester"`
	Photo      string   `json:"photo,omitempty"` // file name under the photos dir
}

// Admin is an administrator credential record.
type Admin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Course is a course offered to one department and semester. ID and
// Semester encode as JSON strings whatever their stored type was.
type Course struct {
	ID         CourseID `json:"id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Semester   Semester `json:"semester"`
}

// Offered reports whether the course belongs to the student's department and semester.
func (c Course) Offered(s Student) bool {
	return c.Department == s.Department && c.Semester == s.Semester
}

// AttendanceRecord holds the attendance counters of one student in one course.
type AttendanceRecord struct {
	StudentEmail string   `json:"studentEmail"`
	CourseID     CourseID `json:"courseId"`
	Present      int      `json:"present"`
	Total        int      `json:"total"`
}

// Leave statuses.
const (
	LeavePending = "Pending"
)

// LeaveRequest is a leave application. ID, StudentEmail and Status are always
// assigned by the server; every other key the student sent is kept in Fields.
type LeaveRequest struct {
	ID           int64
	StudentEmail string
	Status       string
	Fields       map[string]any
}

var leaveReserved = map[string]bool{"id": true, "studentEmail": true, "status": true}

// MarshalJSON flattens Fields next to the server-assigned keys.
func (l LeaveRequest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Fields)+3)
	for k, v := range l.Fields {
		if !leaveReserved[k] {
			out[k] = v
		}
	}
	out["id"] = l.ID
	out["studentEmail"] = l.StudentEmail
	out["status"] = l.Status
	return json.Marshal(out)
}

// UnmarshalJSON splits a flat leave object into the reserved keys and Fields.
func (l *LeaveRequest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("leave request: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("leave request: expected an object")
	}

	*l = LeaveRequest{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch k {
		case "id":
			id, err := leaveID(v)
			if err != nil {
				return err
			}
			l.ID = id
		case "studentEmail":
			l.StudentEmail, _ = v.(string)
		case "status":
			l.Status, _ = v.(string)
		default:
			l.Fields[k] = v
		}
	}
	return nil
}

func leaveID(v any) (int64, error) {
	switch id := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return n, nil
		}
		f, err := id.Float64()
		if err != nil {
			return 0, fmt.Errorf("leave request: invalid id %q", id)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("leave request: invalid id %v", v)
	}
}
