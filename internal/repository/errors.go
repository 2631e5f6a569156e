// Package repository implements the data-access layer. Each repository owns
// exactly one table and issues single parameterized SQL statements. Failures
// surface as a closed set of sentinel errors so handlers can map them to HTTP
// statuses without inspecting driver error text.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrEmailExists is returned when an insert violates the users.email unique
// key. Handlers translate this into a 400 rather than a generic 500.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row. Absence is a normal
// outcome, not a persistence failure.
var ErrNotFound = errors.New("not found")

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
