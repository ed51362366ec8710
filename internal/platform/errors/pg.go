package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlUniqueViolation     = "23505"
	sqlForeignKeyViolation = "23503"
	sqlNotNullViolation    = "23502"
	sqlCheckViolation      = "23514"
	sqlStringTruncation    = "22001"
	sqlSerialization       = "40001"
	sqlDeadlock            = "40P01"
	sqlLockNotAvailable    = "55P03"
	sqlReadOnly            = "25006"
	sqlCannotConnectNow    = "57P03"
	sqlAdminShutdown       = "57P01"
)

// PgError returns the *pgconn.PgError in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateKey reports a unique violation
func IsDuplicateKey(err error) bool {
	e, ok := PgError(err)
	return ok && e.Code == sqlUniqueViolation
}

// DBErrorCode maps a SQLSTATE to an ErrorCode; ok is false for non postgres errors
func DBErrorCode(err error) (ErrorCode, bool) {
	e, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch e.Code {
	case sqlUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case sqlForeignKeyViolation, sqlStringTruncation:
		return ErrorCodeInvalidArgument, true
	case sqlNotNullViolation, sqlCheckViolation:
		return ErrorCodeValidation, true
	case sqlReadOnly, sqlCannotConnectNow, sqlAdminShutdown:
		return ErrorCodeUnavailable, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPostgres wraps err with msg and the mapped code
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// IsRetryable reports contention or transient failures worth another attempt.
// Local cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if e, ok := PgError(err); ok {
		switch e.Code {
		case sqlSerialization, sqlDeadlock, sqlLockNotAvailable, sqlCannotConnectNow:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "commit unexpectedly resulted in rollback") ||
		strings.Contains(s, "deadlock detected") ||
		strings.Contains(s, "could not serialize access")
}
