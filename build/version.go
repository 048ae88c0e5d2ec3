package build

// CurrentCommit is the git revision suffix, set by the build system via
// -ldflags "-X github.com/langpacks/langpacks/build.CurrentCommit=+git.abcdef".
var CurrentCommit string

// BuildVersion is the local build version.
const BuildVersion = "0.3.0"

func UserVersion() string {
	return BuildVersion + CurrentCommit
}
