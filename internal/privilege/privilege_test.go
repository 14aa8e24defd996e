package privilege

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	ok, err := Static(true).IsElevated()
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Static(false).IsElevated()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOSDoesNotError(t *testing.T) {
	_, err := OS{}.IsElevated()
	require.NoError(t, err)
}
