package defaults

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"prism/internal/accent"
	appErrors "prism/internal/errors"
)

// SwVersBinary reports the running OS version.
const SwVersBinary = "/usr/bin/sw_vers"

// Release boundaries for the accent encodings.
const (
	binaryConstraint = "< 10.14"
	legacyConstraint = "< 11"
)

// CapabilityForVersion maps an OS product version onto its accent capability.
func CapabilityForVersion(version string) (accent.Capability, error) {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return accent.CapabilityModernMulti, appErrors.New(appErrors.CodeParseFailed,
			fmt.Sprintf("invalid product version %q", strings.TrimSpace(version)), err)
	}
	binary, err := semver.NewConstraint(binaryConstraint)
	if err != nil {
		return accent.CapabilityModernMulti, fmt.Errorf("binary constraint: %w", err)
	}
	if binary.Check(v) {
		return accent.CapabilityBinary, nil
	}
	legacy, err := semver.NewConstraint(legacyConstraint)
	if err != nil {
		return accent.CapabilityModernMulti, fmt.Errorf("legacy constraint: %w", err)
	}
	if legacy.Check(v) {
		return accent.CapabilityLegacyMulti, nil
	}
	return accent.CapabilityModernMulti, nil
}

// DetectCapability asks sw_vers for the product version. Anything that goes
// wrong falls back to modern-multi.
func DetectCapability(ctx context.Context, swVers Runner) accent.Capability {
	out, err := swVers.Run(ctx, "-productVersion")
	if err != nil {
		logf("sw_vers: %v", err)
		return accent.CapabilityModernMulti
	}
	c, err := CapabilityForVersion(string(out))
	if err != nil {
		logf("capability: %v", err)
		return accent.CapabilityModernMulti
	}
	return c
}

// ResolveCapability honours a forced capability name ("auto" or empty means
// detect).
func ResolveCapability(ctx context.Context, forced string, swVers Runner) (accent.Capability, error) {
	name := strings.TrimSpace(forced)
	if name == "" || strings.EqualFold(name, "auto") {
		return DetectCapability(ctx, swVers), nil
	}
	c, ok := accent.ParseCapability(name)
	if !ok {
		return accent.CapabilityModernMulti, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("unknown scheme %q (want auto, binary, legacy-multi or modern-multi)", name), nil)
	}
	return c, nil
}
