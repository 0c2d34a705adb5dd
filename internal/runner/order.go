package runner

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"bufrunner/internal/testmgr"
)

type Order string

const (
	// Groups and test cases run in the order they were added and registered.
	OrderDeclared Order = "declared"
	// Groups and test cases are sorted by name.
	OrderAlphabetical Order = "alphabetical"
	// Groups and test cases are shuffled using the run seed.
	OrderRandom Order = "random"
)

func (o Order) validate() error {
	switch o {
	case OrderDeclared, OrderAlphabetical, OrderRandom:
		return nil
	default:
		return fmt.Errorf("unknown test order '%s'", string(o))
	}
}

// applyOrder reorders groups and, within each group, test cases. Test cases
// never move between groups so group setup and cleanup stay around them.
func applyOrder(groups []*testmgr.GroupRun, order Order, seed int64) {
	switch order {
	case OrderAlphabetical:
		slices.SortStableFunc(groups, func(a, b *testmgr.GroupRun) int {
			return strings.Compare(a.Group.Name(), b.Group.Name())
		})
		for _, group := range groups {
			slices.SortStableFunc(group.TestCases, func(a, b *testmgr.TestCase) int {
				return strings.Compare(a.Name(), b.Name())
			})
		}
	case OrderRandom:
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(groups), func(i, j int) {
			groups[i], groups[j] = groups[j], groups[i]
		})
		for _, group := range groups {
			rng.Shuffle(len(group.TestCases), func(i, j int) {
				group.TestCases[i], group.TestCases[j] = group.TestCases[j], group.TestCases[i]
			})
		}
	}
}
