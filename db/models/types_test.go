package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueAndScan(t *testing.T) {
	list := StringList{"fitness", "vegan"}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["fitness","vegan"]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListNilAndEmpty(t *testing.T) {
	var list StringList
	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, StringList{}, scanned)
}

func TestStringListScanBytes(t *testing.T) {
	var scanned StringList
	require.NoError(t, scanned.Scan([]byte(`["a"]`)))
	assert.Equal(t, StringList{"a"}, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestIntMapValueAndScan(t *testing.T) {
	mix := IntMap{"image": 60, "video": 40}

	value, err := mix.Value()
	require.NoError(t, err)

	var scanned IntMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, mix, scanned)
}

func TestIntMapNil(t *testing.T) {
	var mix IntMap
	value, err := mix.Value()
	require.NoError(t, err)
	assert.Equal(t, `{}`, value)

	var scanned IntMap
	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, IntMap{}, scanned)
	assert.Error(t, scanned.Scan(3.14))
}
