package repositories

import (
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"meeting-service/internal/models"
)

func IsUniqueViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.UniqueViolation
}

func IsExclusionViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.ExclusionViolation
}

func IsForeignKeyViolationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.ForeignKeyViolation
}

// IsInvalidTextRepresentationError reports a value postgres could not parse
// into the column type, such as a malformed uuid.
func IsInvalidTextRepresentationError(err error) bool {
	var pgxErr *pgconn.PgError
	return errors.As(err, &pgxErr) && pgxErr.Code == pgerrcode.InvalidTextRepresentation
}

// markInvalidInput flags parse failures of query arguments as validation errors.
func markInvalidInput(err error) error {
	if IsInvalidTextRepresentationError(err) {
		return errors.Mark(err, models.ValidationError)
	}
	return err
}
