package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnee(t *testing.T) {
	r := Result{Front: []Point{
		{Wait: 0, Makespan: 100},
		{Wait: 20, Makespan: 60},
		{Wait: 100, Makespan: 50},
	}}
	p, ok := r.Knee()
	require.True(t, ok)
	assert.Equal(t, 20.0, p.Wait)
	assert.Equal(t, 60.0, p.Makespan)
}

func TestKneeSinglePointAndEmpty(t *testing.T) {
	_, ok := Result{}.Knee()
	assert.False(t, ok)

	p, ok := Result{Front: []Point{{Wait: 5, Makespan: 7}}}.Knee()
	require.True(t, ok)
	assert.Equal(t, 5.0, p.Wait)
}
