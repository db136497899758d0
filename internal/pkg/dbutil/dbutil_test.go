package dbutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsToDollarPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT id FROM papers WHERE user_id = ? AND title = ?",
		[]interface{}{"u1", "t1"})
	require.Equal(t, "SELECT id FROM papers WHERE user_id = $1 AND title = $2", query)
	require.Equal(t, []interface{}{"u1", "t1"}, args)
}

func TestFinalizeRewritesMySQLLimit(t *testing.T) {
	query, args := Finalize("SELECT id FROM papers WHERE user_id = ? LIMIT ?,?",
		[]interface{}{"u1", 20, 10})
	require.Equal(t, "SELECT id FROM papers WHERE user_id = $1 LIMIT $2 OFFSET $3", query)
	// offset 20 / count 10 become count-first for LIMIT ? OFFSET ?
	require.Equal(t, []interface{}{"u1", 10, 20}, args)
}

func TestFinalizeLeavesPlainLimitAlone(t *testing.T) {
	query, args := Finalize("SELECT id FROM papers LIMIT ?", []interface{}{5})
	require.Equal(t, "SELECT id FROM papers LIMIT $1", query)
	require.Equal(t, []interface{}{5}, args)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.True(t, IsConflict(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(errors.New("plain error")))
	require.False(t, IsConflict(nil))
}
