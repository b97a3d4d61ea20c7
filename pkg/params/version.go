package params

import "fmt"

const (
	VersionMajor = 0 // Major version component of the current release
	VersionMinor = 1 // Minor version component of the current release
	VersionPatch = 0 // Patch version component of the current release
)

// GitSha is set at build time with -ldflags "-X .../params.GitSha=<sha>"
var GitSha = "development"

var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

var VersionWithGitSha = func() string {
	if len(GitSha) == 0 {
		GitSha = "unknown"
	}
	return fmt.Sprintf("%s-%s", Version, GitSha)
}()

// UserAgent identifies the formatter in requests sent to nodes.
var UserAgent = "ethfmt/" + Version
