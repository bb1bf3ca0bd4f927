package dataset

import (
	"math"
	"math/rand/v2"

	"github.com/YuminosukeSato/adspend/pkg/errors"
)

// DefaultTestFraction holds out 20% of the samples for testing.
const DefaultTestFraction = 0.2

// Split is a disjoint, covering partition of a dataset.
type Split struct {
	Train *Dataset
	Test  *Dataset

	// Positions of each subset's samples in the source dataset.
	TrainIndices []int
	TestIndices  []int
}

// TestSize returns round(testFraction * n).
func TestSize(n int, testFraction float64) int {
	return int(math.Round(testFraction * float64(n)))
}

// TrainTestSplit shuffles the sample positions with src and assigns the first
// TestSize(n, testFraction) of the permutation to the test set and the rest to
// the training set.
func TrainTestSplit(ds *Dataset, testFraction float64, src rand.Source) (_ *Split, err error) {
	defer errors.Recover(&err, "dataset.TrainTestSplit")

	if ds == nil {
		return nil, errors.NewValueError("dataset.TrainTestSplit", "dataset is nil")
	}
	if src == nil {
		return nil, errors.NewValueError("dataset.TrainTestSplit", "random source is nil")
	}
	if math.IsNaN(testFraction) || testFraction <= 0 || testFraction >= 1 {
		return nil, errors.NewValidationError("test_fraction", "must be in (0, 1)", testFraction)
	}

	n := ds.Len()
	nTest := TestSize(n, testFraction)
	if nTest == 0 || nTest == n {
		return nil, errors.NewValidationError("test_fraction",
			"leaves the training or test set empty for this sample count", testFraction)
	}

	perm := rand.New(src).Perm(n)
	testIdx := append([]int(nil), perm[:nTest]...)
	trainIdx := append([]int(nil), perm[nTest:]...)

	train, err := ds.Subset(trainIdx)
	if err != nil {
		return nil, err
	}
	test, err := ds.Subset(testIdx)
	if err != nil {
		return nil, err
	}

	return &Split{
		Train:        train,
		Test:         test,
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
	}, nil
}
