package comp

import (
	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/prep"
)

// ParseCoord transforms the coordinate property v into a GameCoord using
// the map's axis mapping (spec §4.11), grounded exactly on the original
// `compiler-core/src/comp/line/coord.rs`: a coord array of length 2 or 3
// where 2D uses `mapping_2d` and 3D uses `mapping_3d`; components the
// mapping doesn't mention default to zero; no map configured means zeros
// without error.
func ParseCoord(m *prep.MapMetadata, v blob.SafeRouteBlob) (prep.GameCoord, *Error) {
	items, ok := v.AsArray()
	if !ok {
		return prep.GameCoord{}, newErrArg(ErrInvalidCoordinateType, v.CoerceToRepl())
	}
	return ParseCoordArray(m, items)
}

// ParseCoordArray is ParseCoord's array-already-extracted form, used
// directly by movement/marker parsing which already holds a
// []blob.SafeRouteBlob.
func ParseCoordArray(m *prep.MapMetadata, items []blob.SafeRouteBlob) (prep.GameCoord, *Error) {
	var out prep.GameCoord
	switch len(items) {
	case 2:
		if m != nil {
			if err := mapAxis(m.CoordMap.Mapping2D[0], items[0], &out); err != nil {
				return out, err
			}
			if err := mapAxis(m.CoordMap.Mapping2D[1], items[1], &out); err != nil {
				return out, err
			}
		}
	case 3:
		if m != nil {
			if err := mapAxis(m.CoordMap.Mapping3D[0], items[0], &out); err != nil {
				return out, err
			}
			if err := mapAxis(m.CoordMap.Mapping3D[1], items[1], &out); err != nil {
				return out, err
			}
			if err := mapAxis(m.CoordMap.Mapping3D[2], items[2], &out); err != nil {
				return out, err
			}
		}
	default:
		return out, newErr(ErrInvalidCoordinateArray)
	}
	return out, nil
}

func mapAxis(axis prep.Axis, v blob.SafeRouteBlob, out *prep.GameCoord) *Error {
	n, ok := v.TryCoerceToF64()
	if !ok {
		return newErrArg(ErrInvalidCoordinateValue, v.CoerceToRepl())
	}
	switch axis {
	case prep.AxisX:
		out.X = n
	case prep.AxisY:
		out.Y = n
	case prep.AxisZ:
		out.Z = n
	case prep.AxisNegX:
		out.X = -n
	case prep.AxisNegY:
		out.Y = -n
	case prep.AxisNegZ:
		out.Z = -n
	}
	return nil
}
