package app

import (
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSets(t *testing.T) {
	models := []rentbook.Model{
		rentbook.Pair([]byte("a"), []byte("1")),
		rentbook.Pair([]byte("b"), []byte("2")),
	}
	rawKeys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	rawValues, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	got, err := toModels(rawKeys, rawValues)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(&ResultSet{Results: [][]byte{{1}}}, &ResultSet{})
	assert.True(t, errors.ErrInput.Is(err))
}

func TestUnmarshalOneResult(t *testing.T) {
	empty, err := (&ResultSet{}).Marshal()
	require.NoError(t, err)
	var dst ResultSet
	err = UnmarshalOneResult(empty, &dst)
	assert.True(t, errors.ErrNotFound.Is(err))

	inner, err := (&ResultSet{Results: [][]byte{[]byte("x")}}).Marshal()
	require.NoError(t, err)
	outer, err := (&ResultSet{Results: [][]byte{inner}}).Marshal()
	require.NoError(t, err)
	require.NoError(t, UnmarshalOneResult(outer, &dst))
	assert.Equal(t, [][]byte{[]byte("x")}, dst.Results)
}
