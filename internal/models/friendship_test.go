package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey(7, 12), PairKey(12, 7))
	assert.Equal(t, "7:12", PairKey(12, 7))
	assert.NotEqual(t, PairKey(1, 2), PairKey(1, 3))
}

func TestQuestionHasOption(t *testing.T) {
	q := Question{Options: []string{"Coffee", "Tea"}}
	assert.True(t, q.HasOption("Tea"))
	assert.False(t, q.HasOption("Juice"))
	assert.False(t, q.HasOption("tea")) // options are case-sensitive
	assert.False(t, q.Answered())
}
