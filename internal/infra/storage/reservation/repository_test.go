package reservation

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubhousegolfcanada/ClubOSV2-sub011/internal/domain"
)

func TestStatusValues(t *testing.T) {
	assert.Equal(t, []string{"confirmed", "completed"}, statusValues(domain.ActiveStatuses))
	assert.Equal(t, []string{"cancelled"}, statusValues(domain.InactiveStatuses))
}

// The overlap queries must keep cancelled reservations out by listing the
// occupying statuses, not by excluding a hard-coded one.
func TestStatusFilterRendersIn(t *testing.T) {
	sql, args, err := squirrel.Select("id").
		From(reservationsTable).
		Where(squirrel.Eq{"status": statusValues(domain.ActiveStatuses)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "status IN ($1,$2)")
	assert.Equal(t, []interface{}{"confirmed", "completed"}, args)
}
