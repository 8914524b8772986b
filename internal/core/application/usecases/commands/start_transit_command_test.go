package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartTransitCommand(t *testing.T) {
	t.Run("valid order id", func(t *testing.T) {
		cmd, err := commands.NewStartTransitCommand(7)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, int64(7), cmd.OrderID())
	})

	t.Run("zero order id", func(t *testing.T) {
		_, err := commands.NewStartTransitCommand(0)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.StartTransitCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrStartTransitCommandIsNotConstructed)
	})
}
