package memory

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/webrank/linkgraph/graph/graphtest"
)

// Initialize and register an instance of the inMemoryGraphTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(inMemoryGraphTestSuite))

// Test registers the [check] library with the go testing library and
// enables the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// inMemoryGraphTestSuite embeds and runs the BaseSuite test methods.
type inMemoryGraphTestSuite struct {
	graphtest.BaseSuite
}

// SetUpTest runs before each test in the test suite. Each test receives
// a fresh store instance.
func (s *inMemoryGraphTestSuite) SetUpTest(c *check.C) {
	s.SetGraph(NewInMemoryGraph())
}
