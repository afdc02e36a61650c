package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a failure so callers can branch without reading messages
type Kind int

const (
	KindInternal Kind = iota
	KindConnectivity
	KindConflict
	KindValidation
	KindNotFound
	KindPermission
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	default:
		return "internal"
	}
}

// Error is a kind + message pair with optional context fields and cause.
// Copies made by WithField/Wrap still match the original under errors.Is.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]any
	Err     error
}

// New creates a sentinel
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Fields[k])
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind and message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithField returns a copy carrying an extra context field
func (e *Error) WithField(key string, value any) *Error {
	cp := *e
	cp.Fields = make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		cp.Fields[k] = v
	}
	cp.Fields[key] = value
	return &cp
}

// Wrap returns a copy with cause attached
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.Err = cause
	return &cp
}

// KindOf returns the kind of the first *Error in the chain, or classifies raw store errors
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Classify(err).Kind
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ── store error classification ──

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

var (
	ErrStoreUnavailable = New(KindConnectivity, "store unavailable")
	ErrDuplicate        = New(KindConflict, "duplicate record")
	ErrConstraint       = New(KindValidation, "constraint violated")
	ErrRecordNotFound   = New(KindNotFound, "record not found")
	ErrInternal         = New(KindInternal, "internal error")
)

// Classify maps a raw driver/gorm error onto a typed *Error
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound.Wrap(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate.WithField("constraint", pgErr.ConstraintName).Wrap(err)
		case pgForeignKeyViolation, pgCheckViolation, pgNotNullViolation:
			return ErrConstraint.WithField("constraint", pgErr.ConstraintName).Wrap(err)
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return ErrStoreUnavailable.Wrap(err)
		}
		return ErrInternal.Wrap(err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return ErrStoreUnavailable.Wrap(err)
	}

	return ErrInternal.Wrap(err)
}

// IsUniqueViolation reports a unique-constraint failure from the store
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
