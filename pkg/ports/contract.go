package ports

import (
	"context"
	"testing"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SourceFactory builds a source that yields msgs and then runs dry.
type SourceFactory func(t *testing.T, msgs []string) MessageSource

// RunMessageSourceContract runs a suite of tests to verify that a MessageSource
// implementation adheres to the defined interface contract.
func RunMessageSourceContract(t *testing.T, factory SourceFactory) {
	ctx := context.Background()

	t.Run("Yields in order", func(t *testing.T) {
		msgs := []string{"CQ BI4VNM PM01", "BI4VNM DU3TW PK05", "DU3TW BI4VNM +00"}
		src := factory(t, msgs)

		for _, want := range msgs {
			got, err := src.Next(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}

		_, err := src.Next(ctx)
		assert.ErrorIs(t, err, domain.ErrEndOfData)
	})

	t.Run("Exhaustion is sticky", func(t *testing.T) {
		src := factory(t, nil)

		for i := 0; i < 3; i++ {
			_, err := src.Next(ctx)
			assert.ErrorIs(t, err, domain.ErrEndOfData, "call %d", i)
		}
	})
}
