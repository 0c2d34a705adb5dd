package run

import (
	"testing"

	"bufrunner/internal/testhelpers"
	"bufrunner/pkg/bufrunner/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupNames(groups []core.TestGroup) []string {
	names := make([]string, 0, len(groups))
	for _, group := range groups {
		names = append(names, group.Name())
	}
	return names
}

func TestSelectGroups(t *testing.T) {
	suite := testhelpers.NewSuite("select",
		&testhelpers.Group{GroupName: "a", GroupTags: []string{"fast"}},
		&testhelpers.Group{GroupName: "b", GroupTags: []string{"slow"}},
		&testhelpers.Group{GroupName: "c", GroupTags: []string{"fast", "db"}},
	)

	t.Run("all groups", func(t *testing.T) {
		groups, err := (&RunCmd{}).selectGroups(suite)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, groupNames(groups))
	})

	t.Run("by name keeps the given order", func(t *testing.T) {
		groups, err := (&RunCmd{Groups: []string{"c", "a"}}).selectGroups(suite)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, groupNames(groups))
	})

	t.Run("by tag", func(t *testing.T) {
		groups, err := (&RunCmd{Tags: []string{"fast"}}).selectGroups(suite)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, groupNames(groups))
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := (&RunCmd{Groups: []string{"missing"}}).selectGroups(suite)
		assert.Error(t, err)
	})
}
