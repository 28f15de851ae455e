package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/hotelbilling/internal/storage"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	_, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	value := []byte(`[1,2,3]`)
	require.NoError(t, s.Save(ctx, "k", value))
	value[0] = 'x'

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(got), "saved value must be copied")

	got[1] = '9'
	again, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(again), "loaded value must be copied")
}
