package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	original := StringList{"Be kind", "空谈误国"}
	value, err := original.Value()
	require.NoError(t, err)

	var loaded StringList
	require.NoError(t, loaded.Scan(value))
	assert.Equal(t, original, loaded)

	// NULL 列读出来是空列表而不是 nil
	require.NoError(t, loaded.Scan(nil))
	assert.Equal(t, StringList{}, loaded)
}

func TestPointRulesRoundTrip(t *testing.T) {
	// 未知键也要原样保留
	original := PointRules{"post": 10, "like_received": 5, "custom_badge": 100}
	value, err := original.Value()
	require.NoError(t, err)

	var loaded PointRules
	require.NoError(t, loaded.Scan(value))
	assert.Equal(t, original, loaded)

	assert.Equal(t, 10, loaded.Reward(ActionPost))
	assert.Equal(t, 0, loaded.Reward(ActionComment))
	assert.Equal(t, 0, PointRules(nil).Reward(ActionPost))
}
