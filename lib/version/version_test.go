// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	saved := [3]string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = saved[0], saved[1], saved[2] })

	Version, GitCommit, BuildTime = "1.2.0", "abc1234", "2026-01-02T03:04:05Z"

	if got, want := Info(), "1.2.0 (abc1234, 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if full := Full(); !strings.HasPrefix(full, Info()) || !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() = %q", full)
	}
	if got := UserAgent(); got != "hipchat-go/1.2.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}
