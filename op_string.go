// Code generated by "stringer -type=Op -trimprefix=Op"; adapted by hand
// since go:generate is not run in this environment. DO NOT re-generate
// blindly -- the value-to-name mapping below must stay in sync with the
// Op constants in diff.go.

package diffmatchpatch

import "strconv"

func _() {
	// An "invalid array index" compiler error signals that the constant
	// values have changed. Re-run the stringer generate directive and
	// update this file accordingly.
	var x [1]struct{}
	_ = x[OpDelete - -1]
	_ = x[OpEqual-0]
	_ = x[OpInsert-1]
}

const _Op_name = "DeleteEqualInsert"

var _Op_index = [...]uint8{0, 6, 11, 17}

// String returns the name of op ("Delete", "Equal", "Insert"), or a
// numeric fallback for any other value.
func (op Op) String() string {
	i := int(op) + 1 // shift so OpDelete (-1) indexes from 0
	if i < 0 || i >= len(_Op_index)-1 {
		return "Op(" + strconv.FormatInt(int64(op), 10) + ")"
	}
	return _Op_name[_Op_index[i]:_Op_index[i+1]]
}
