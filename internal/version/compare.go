package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// CheckCompatibility checks whether a version declared by a caller (a config
// file or an API client) can be served by the supported version.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.0.0 is compatible with 1.0.3)
func CheckCompatibility(supported, declared string) error {
	supported = strings.TrimPrefix(supported, "v")
	declared = strings.TrimPrefix(declared, "v")

	if supported == "main" || declared == "main" {
		return nil
	}

	supportedSemver, err := semver.NewVersion(supported)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid supported version '%s'", supported)
	}

	declaredSemver, err := semver.NewVersion(declared)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid declared version '%s'", declared)
	}

	if supportedSemver.Major() != declaredSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "major version mismatch: supported is %d.x.x but got %d.x.x",
			supportedSemver.Major(), declaredSemver.Major())
	}

	if supportedSemver.Minor() != declaredSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "minor version mismatch: supported is %d.%d.x but got %d.%d.x",
			supportedSemver.Major(), supportedSemver.Minor(),
			declaredSemver.Major(), declaredSemver.Minor())
	}

	return nil
}

// CheckConfigVersion checks a configuration file version against ConfigVersion.
func CheckConfigVersion(declared string) error {
	return CheckCompatibility(ConfigVersion, declared)
}
