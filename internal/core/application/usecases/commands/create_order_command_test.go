package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid details", func(t *testing.T) {
		details := testDetails(t)
		cmd, err := commands.NewCreateOrderCommand(details)
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, details.CustomerName(), cmd.Details().CustomerName())
	})

	t.Run("unconstructed details", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(order.Details{})
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
