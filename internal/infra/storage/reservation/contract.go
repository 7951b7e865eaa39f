package reservation

import (
	"github.com/clubhousegolfcanada/ClubOSV2-sub011/pkg/dbmetrics"
)

// DBExecutor is the query surface the repository runs against. Both
// *sql.DB and the instrumented dbmetrics wrapper satisfy it, and an open
// transaction in the context takes precedence over it.
type DBExecutor = dbmetrics.DBExecutor
