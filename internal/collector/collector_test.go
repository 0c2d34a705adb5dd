package collector

import (
	"fmt"
	"testing"

	"bufrunner/pkg/bufrunner/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrant struct {
	names []string
	err   error
}

func (f *fakeRegistrant) Name() string {
	return "fake"
}

func (f *fakeRegistrant) RegisterTestCases(r core.TestRegistrar) error {
	for _, name := range f.names {
		r.RegisterTestCase(name, func(core.TestCase) error { return nil })
	}
	return f.err
}

func TestCollectTestCases(t *testing.T) {
	t.Run("declaration order", func(t *testing.T) {
		cases, err := CollectTestCases(&fakeRegistrant{names: []string{"zeta", "alpha", "mid-1"}})
		require.NoError(t, err)
		require.Len(t, cases, 3)
		assert.Equal(t, "zeta", cases[0].Name)
		assert.Equal(t, "alpha", cases[1].Name)
		assert.Equal(t, "mid-1", cases[2].Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := CollectTestCases(&fakeRegistrant{names: []string{"a", "a"}})
		assert.ErrorContains(t, err, "not unique")
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := CollectTestCases(&fakeRegistrant{names: []string{"has space"}})
		assert.ErrorContains(t, err, "invalid")
	})

	t.Run("registration error", func(t *testing.T) {
		regErr := fmt.Errorf("cannot register")
		_, err := CollectTestCases(&fakeRegistrant{err: regErr})
		assert.ErrorIs(t, err, regErr)
	})
}
