package errors

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateEntry = 1062

// IsDuplicate reports whether err is a MySQL unique-constraint
// violation. Uniqueness conflicts surface as 400s carrying the store
// message rather than as internal errors.
func IsDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
