package comp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/prep"
)

func numArr(vals ...float64) []blob.SafeRouteBlob {
	out := make([]blob.SafeRouteBlob, len(vals))
	for i, v := range vals {
		out[i] = blob.SafeNumber(v)
	}
	return out
}

func TestParseCoordArrayNoMapReturnsZero(t *testing.T) {
	coord, err := comp.ParseCoordArray(nil, numArr(1, 2, 3))
	require.Nil(t, err)
	assert.Equal(t, prep.GameCoord{}, coord)
}

func TestParseCoordArrayInvalidLength(t *testing.T) {
	_, err := comp.ParseCoordArray(nil, numArr(1))
	require.NotNil(t, err)
	assert.Equal(t, comp.ErrInvalidCoordinateArray, err.Kind)
}

func TestParseCoordArrayInvalidValue(t *testing.T) {
	m := &prep.MapMetadata{CoordMap: prep.MapCoordMap{
		Mapping2D: [2]prep.Axis{prep.AxisX, prep.AxisY},
	}}
	items := []blob.SafeRouteBlob{blob.SafeString("nope"), blob.SafeNumber(2)}
	_, err := comp.ParseCoordArray(m, items)
	require.NotNil(t, err)
	assert.Equal(t, comp.ErrInvalidCoordinateValue, err.Kind)
}

func TestParseCoordArray3DMapping(t *testing.T) {
	m := &prep.MapMetadata{CoordMap: prep.MapCoordMap{
		Mapping3D: [3]prep.Axis{prep.AxisZ, prep.AxisZ, prep.AxisY},
	}}
	coord, err := comp.ParseCoordArray(m, numArr(1, 2, 3))
	require.Nil(t, err)
	assert.Equal(t, prep.GameCoord{X: 0, Y: 3, Z: 2}, coord)
}

func TestParseCoordInvalidType(t *testing.T) {
	_, err := comp.ParseCoord(nil, blob.SafeString("nope"))
	require.NotNil(t, err)
	assert.Equal(t, comp.ErrInvalidCoordinateType, err.Kind)
}
