// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package version

import (
	"runtime/debug"
)

// Version is overridden at build time via -ldflags "-X .../internal/version.Version=..."
var Version = "0.1.0" // x-release-please-version

// Revision returns the vcs revision stamped by the go toolchain, empty when the binary
// was not built from a checkout.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return ""
}
