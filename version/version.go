package version

import "fmt"

// overwritten by ldflags at release build time
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)

var FullVersion = fmt.Sprintf("%s (%s) %s", Version, GitCommit, BuildDate)
