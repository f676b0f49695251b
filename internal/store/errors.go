package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Common errors
var (
	ErrNotFound   = errors.New("record not found")
	ErrConflict   = errors.New("duplicate key violation")
	ErrForeignKey = errors.New("foreign key violation")
	ErrConstraint = errors.New("check constraint violation")
)

// Error describes a failed store operation.
type Error struct {
	Op    string // Operation that failed
	Table string // Table involved
	ID    string // Row id, if applicable
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, e.Op)
	if e.Table != "" {
		parts = append(parts, "table="+e.Table)
	}
	if e.ID != "" {
		parts = append(parts, "id="+e.ID)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap converts driver errors into store errors carrying a sentinel that
// callers can test with errors.Is.
func wrap(err error, op, table, id string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Table: table, ID: id, Err: classify(err)}
}

func classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s", ErrForeignKey, pqErr.Constraint)
		case "23514":
			return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Constraint)
		}
		return err
	}

	// modernc.org/sqlite reports constraint failures only through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %s", ErrForeignKey, msg)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %s", ErrConstraint, msg)
	}
	return err
}

// notFound builds the error returned when a write matched no rows.
func notFound(op, table, id string) error {
	return &Error{Op: op, Table: table, ID: id, Err: ErrNotFound}
}
