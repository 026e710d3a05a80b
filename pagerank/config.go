package pagerank

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// Config encapsulates the configuration options for creating a new PageRank
// calculator instance.
type Config struct {
	// DampingFactor is the probability that a random surfer will follow one
	// of the outgoing links on the page they are currently visiting. Its
	// value must be in the (0, 1) range. If not specified, a default value
	// of 0.85 will be used instead.
	DampingFactor float64

	// MinSADForConvergence specifies the minimum sum of absolute score
	// differences [SAD] between two consecutive iterations for the
	// calculation to be considered converged. If not specified, a default
	// value of 1e-6 will be used instead.
	MinSADForConvergence float64

	// MaxIterations caps the number of score update iterations that the
	// calculator will run before giving up on convergence. If not
	// specified, a default value of 100 will be used instead.
	MaxIterations int

	// ComputeWorkers specifies the number of workers to use when updating
	// the vertex scores for each iteration. If not specified, a single
	// worker will be used.
	ComputeWorkers int
}

// validate checks whether the calculator configuration is valid and sets the
// default values where required.
func (c *Config) validate() error {
	var err error

	if c.DampingFactor == 0 {
		c.DampingFactor = 0.85
	} else if c.DampingFactor < 0 || c.DampingFactor >= 1.0 {
		err = multierror.Append(
			err, errors.New("damping factor must be in the (0, 1) range"),
		)
	}

	if c.MinSADForConvergence == 0 {
		c.MinSADForConvergence = 1e-6
	} else if c.MinSADForConvergence < 0 {
		err = multierror.Append(
			err, errors.New("minimum SAD for convergence must be positive"),
		)
	}

	if c.MaxIterations == 0 {
		c.MaxIterations = 100
	} else if c.MaxIterations < 0 {
		err = multierror.Append(
			err, errors.New("max iterations must be positive"),
		)
	}

	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}

	return err
}
