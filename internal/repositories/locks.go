package repositories

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
)

const lockCalendarSQL = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"

// LockUserCalendars takes a transaction-scoped advisory lock on the calendar
// of each user. Locks are taken in sorted order so two transactions locking
// the same pair of users cannot deadlock. They are released at commit or
// rollback, so exec must be a transaction.
func (repo *PgRepository) LockUserCalendars(ctx context.Context, exec Executor, userIDs ...string) error {
	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	for _, id := range ids {
		if _, err := exec.Exec(ctx, lockCalendarSQL, "calendar:"+id); err != nil {
			return errors.Wrapf(err, "locking calendar of user %s", id)
		}
	}
	return nil
}
