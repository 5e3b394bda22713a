// Package misc holds build-time program identification.
package misc

// set by linker flags
var (
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns the program name used for logs and report files.
func GetAppName() string {
	return "fontcolor"
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
