package cdb

import (
	"database/sql"
	"os"
	"testing"

	check "gopkg.in/check.v1"

	"github.com/mycok/webrank/linkgraph/graph/graphtest"
)

// Initialize and register an instance of the cockroachDBGraphTestSuite to
// be executed by check testing package.
var _ = check.Suite(new(cockroachDBGraphTestSuite))

// Test registers the [check] library with the go testing library and
// enables the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// cockroachDBGraphTestSuite embeds and runs the BaseSuite test methods
// against a CockroachDB instance.
type cockroachDBGraphTestSuite struct {
	graphtest.BaseSuite
	db *sql.DB
}

// SetUpSuite runs only once before all the tests in the test suite. It
// skips the entire suite unless a CDB_DSN env variable points to a
// running CockroachDB instance.
func (s *cockroachDBGraphTestSuite) SetUpSuite(c *check.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN env variable: skipping cockroachDB backed test suite")
	}

	g, err := NewCockroachDBGraph(dsn)
	c.Assert(err, check.IsNil)
	s.SetGraph(g)

	s.db = g.db
}

// SetUpTest runs before each test in the test suite. Each test receives
// a store with empty links and edges tables.
func (s *cockroachDBGraphTestSuite) SetUpTest(c *check.C) {
	s.flushDB(c)
}

// TearDownSuite runs only once after all the tests in the test suite
// have run.
func (s *cockroachDBGraphTestSuite) TearDownSuite(c *check.C) {
	if s.db != nil {
		s.flushDB(c)

		err := s.db.Close()
		c.Assert(err, check.IsNil)
	}
}

func (s *cockroachDBGraphTestSuite) flushDB(c *check.C) {
	_, err := s.db.Exec("TRUNCATE links CASCADE")
	c.Assert(err, check.IsNil)
}
