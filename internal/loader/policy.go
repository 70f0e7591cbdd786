package loader

import (
	"math"

	"github.com/ream-lab/catex/internal/model"
)

// loadPolicy reads max_diffangle.csv, a single-row, single-value file giving
// the angle limit in degrees, and converts it to radians for
// model.Policy.
func loadPolicy(path string) (model.Policy, error) {
	t, err := readTable(path)
	if err != nil {
		return model.Policy{}, err
	}
	if len(t.rows) == 0 {
		return model.Policy{}, nil
	}

	degrees, err := t.float(t.rows[0], 2, "max_diffangle_degrees")
	if err != nil {
		return model.Policy{}, err
	}

	return model.Policy{MaxDiffAngleRadians: degrees * math.Pi / 180}, nil
}
