package queries_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("creates query for positive id", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), query.OrderID())
		require.NoError(t, query.Validate())
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := queries.NewGetOrderQuery(id)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestNewGetOrderStatusQuery(t *testing.T) {
	t.Run("creates query for positive id", func(t *testing.T) {
		query, err := queries.NewGetOrderStatusQuery(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), query.OrderID())
		require.NoError(t, query.Validate())
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		for _, id := range []int64{0, -7} {
			_, err := queries.NewGetOrderStatusQuery(id)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderStatusQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetOrderStatusQueryIsNotConstructed)
	})
}

func TestNewGetOrderEventsQuery(t *testing.T) {
	t.Run("creates query for positive id", func(t *testing.T) {
		query, err := queries.NewGetOrderEventsQuery(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), query.OrderID())
		require.NoError(t, query.Validate())
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := queries.NewGetOrderEventsQuery(id)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderEventsQuery
		require.ErrorIs(t, query.Validate(), queries.ErrGetOrderEventsQueryIsNotConstructed)
	})
}
