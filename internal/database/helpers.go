package database

import "database/sql"

// requireAffected validates that an exec touched at least one row,
// returning missingErr when it touched none.
func requireAffected(result sql.Result, err, missingErr error) error {
	if err != nil {
		return err
	}
	n, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return affectedErr
	}
	if n == 0 {
		return missingErr
	}
	return nil
}
