package sim

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeMD1_Stable(t *testing.T) {
	tests := []struct {
		lambda, mu float64
		rho, lq, l float64
		wq, w      float64
	}{
		// ρ=0.8: Lq = 0.64/0.4 = 1.6
		{0.8, 1.0, 0.8, 1.6, 2.4, 2.0, 3.0},
		// ρ=0.5: Lq = 0.25/1 = 0.25
		{1.0, 2.0, 0.5, 0.25, 0.75, 0.25, 0.75},
	}
	for _, tt := range tests {
		ss := AnalyzeMD1(tt.lambda, tt.mu)
		assert.True(t, ss.Stable)
		assert.InDelta(t, tt.rho, ss.Rho, 1e-12)
		assert.InDelta(t, tt.lq, ss.Lq, 1e-12)
		assert.InDelta(t, tt.l, ss.L, 1e-12)
		assert.InDelta(t, tt.wq, ss.Wq, 1e-12)
		assert.InDelta(t, tt.w, ss.W, 1e-12)
		// Little's law
		assert.InDelta(t, ss.L, tt.lambda*ss.W, 1e-12)
	}
}

func TestAnalyzeMD1_Unstable(t *testing.T) {
	for _, lambda := range []float64{1.0, 3.0} {
		ss := AnalyzeMD1(lambda, 1.0)
		assert.False(t, ss.Stable)
		assert.True(t, math.IsInf(ss.L, 1))
		assert.True(t, math.IsInf(ss.Wq, 1))
	}
}

func TestSteadyState_MarshalJSON_UnstableIsNull(t *testing.T) {
	data, err := json.Marshal(AnalyzeMD1(2, 1))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["stable"])
	assert.Nil(t, decoded["mean_in_system"])
	assert.Equal(t, 2.0, decoded["rho"])

	data, err = json.Marshal(AnalyzeMD1(0.8, 1))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.InDelta(t, 2.4, decoded["mean_in_system"], 1e-12)
}
