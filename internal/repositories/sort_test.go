package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equipmentListSQL(t *testing.T, sortParams map[string]string) string {
	t.Helper()
	builder := psql.Select("id", "name").From("equipment")
	builder = applySort(builder, sortParams, equipmentSortColumns, "name")
	query, _, err := builder.ToSql()
	require.NoError(t, err)
	return query
}

func TestApplySortUsesRequestedColumn(t *testing.T) {
	query := equipmentListSQL(t, map[string]string{"total_quantity": "desc"})
	assert.Contains(t, query, "ORDER BY total_quantity DESC")
}

func TestApplySortDefaultsWithoutParams(t *testing.T) {
	query := equipmentListSQL(t, nil)
	assert.Contains(t, query, "ORDER BY name")
}

func TestApplySortIgnoresUnknownColumn(t *testing.T) {
	query := equipmentListSQL(t, map[string]string{"password_hash": "asc"})
	assert.Contains(t, query, "ORDER BY name")
	assert.NotContains(t, query, "password_hash")
}

func TestApplySortOrdersFieldsDeterministically(t *testing.T) {
	query := equipmentListSQL(t, map[string]string{
		"total_quantity": "asc",
		"created_at":     "desc",
	})
	assert.Contains(t, query, "ORDER BY created_at DESC, total_quantity ASC")
}

func TestApplySortQualifiesReservationColumns(t *testing.T) {
	builder := psql.Select("r.id").From("reservations r")
	builder = applySort(builder, map[string]string{"status": "asc"}, reservationSortColumns, "r.reservation_date DESC, r.id DESC")
	query, _, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY r.status ASC")
}
