// Package version holds build information set via -ldflags, e.g.
//
//	go build -ldflags "-X github.com/jackzampolin/folio/version.GitRelease=v0.1.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag.
	GitRelease = "dev"
	// GitCommit is the commit hash.
	GitCommit = "unknown"
	// GitCommitDate is the commit date.
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain and platform the binary was built with.
	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

// String returns a one-line version description.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", GitRelease, GitCommit, GitCommitDate)
}
