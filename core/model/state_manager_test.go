package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/adspend/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()

	assert.False(t, s.IsFitted())
	err := s.RequireFitted("LinearRegression", "Predict")
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "Predict", nf.Method)

	s.MarkFitted(1, 80)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("LinearRegression", "Predict"))
	f, n := s.Dimensions()
	assert.Equal(t, 1, f)
	assert.Equal(t, 80, n)

	s.Reset()
	assert.False(t, s.IsFitted())
	f, n = s.Dimensions()
	assert.Zero(t, f)
	assert.Zero(t, n)
}
