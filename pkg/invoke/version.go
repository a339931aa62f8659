package invoke

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion verifies that a tool's reported version satisfies the
// given minimum. Versions may carry a leading "v" and build metadata,
// both are handled by the semver parser.
func CheckVersion(tool, reported, minimum string) error {
	if minimum == "" {
		return nil
	}

	v, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("cannot parse %s version %q: %w", tool, reported, err)
	}

	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", minimum, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%s %s is older than the minimum supported %s", tool, reported, minimum)
	}
	return nil
}
