// Package store persists the application's named JSON documents.
//
// Every backend loads and saves whole documents. There is no locking and no
// versioning: two concurrent saves of the same document race and the last
// writer wins. Callers must not assume anything stronger.
package store

import (
	"context"
	"fmt"
)

// Document names.
const (
	StudentsDoc   = "students.json"
	AdminsDoc     = "admins.json"
	CoursesDoc    = "courses.json"
	AttendanceDoc = "attendance.json"
	LeavesDoc     = "leaves.json"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Documents loads and saves named JSON documents.
type Documents interface {
	// Load decodes the named document into v. When the document does not
	// exist v is left untouched, so callers pre-fill it with their default.
	Load(ctx context.Context, name string, v any) error
	// Save replaces the named document with doc.
	Save(ctx context.Context, name string, doc any) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Dir         string
	SQLitePath  string
	DatabaseURL string
	RedisAddr   string
	RedisPrefix string
}

// Open builds the Documents backend named by opts.Backend.
func Open(opts Options) (Documents, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileDocuments(opts.Dir)
	case BackendSQLite:
		return NewSQLite(opts.SQLitePath)
	case BackendPostgres:
		return NewPostgres(opts.DatabaseURL)
	case BackendRedis:
		return NewRedis(opts.RedisAddr, opts.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", opts.Backend)
	}
}
