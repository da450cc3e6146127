package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/runtime"
)

func TestYieldBudgetNoopsBelowLimit(t *testing.T) {
	b := runtime.NewBudget(10, 1)
	ctx := context.Background()
	for i := 0; i < 9; i++ {
		require.NoError(t, b.YieldBudget(ctx))
	}
}

func TestYieldBudgetDetectsCancellationAtLimit(t *testing.T) {
	b := runtime.NewBudget(2, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, b.YieldBudget(ctx))
	err := b.YieldBudget(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestYieldBudgetZeroLimitChecksEveryCall(t *testing.T) {
	b := runtime.NewBudget(0, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, b.YieldBudget(ctx), context.Canceled)
}
