package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// MySQL server error numbers that signal integrity violations.
var mysqlConstraintCodes = map[uint16]struct{}{
	1048: {}, // column cannot be null
	1062: {}, // duplicate entry
	1216: {}, // child row: foreign key fails
	1217: {}, // parent row: foreign key fails
	1451: {}, // cannot delete or update a parent row
	1452: {}, // cannot add or update a child row
}

// Classify maps a driver error to a typed error. message names the failed operation.
func Classify(err error, message string) *appErrors.Error {
	if err == nil {
		return nil
	}
	var typed *appErrors.Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Kind, appErrors.ErrNotFound.Code, message)
	}
	if isConstraint(err) {
		return appErrors.Wrap(err, appErrors.ErrConstraint.Kind, appErrors.ErrConstraint.Code, message)
	}
	if isConnection(err) {
		return appErrors.Wrap(err, appErrors.ErrConnection.Kind, appErrors.ErrConnection.Code, message)
	}
	return appErrors.Wrap(err, appErrors.ErrQuery.Kind, appErrors.ErrQuery.Code, message)
}

func isConstraint(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		_, ok := mysqlConstraintCodes[myErr.Number]
		return ok
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}
	return false
}

func isConnection(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}
	return strings.Contains(err.Error(), "connection refused")
}
