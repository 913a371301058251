// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version holds build metadata stamped in with -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/hipchat/lib/version.Version=1.2.0 \
//	    -X github.com/bureau-foundation/hipchat/lib/version.GitCommit=$(git rev-parse --short HEAD)" \
//	    ./cmd/hipchat
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the release version.
	Version = "0.1.0-dev"

	// GitCommit is the short commit hash of the build.
	GitCommit = "unknown"

	// BuildTime is when the binary was built, RFC 3339.
	BuildTime = "unknown"
)

// Info returns "version (commit, build time)".
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildTime)
}

// Full adds the Go toolchain and platform to Info.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent on every API request.
func UserAgent() string {
	return "hipchat-go/" + Version
}
