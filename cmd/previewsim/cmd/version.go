package cmd

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/mod/semver"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the previewsim version, build time and engine module version.",
		Usage: "previewsim version",
		Run:   runVersion,
	})
}

func runVersion(env *Env, _ []string) error {
	fmt.Fprintf(env.Stdout, "previewsim version %s (built %s)\n", displayVersion(Version), BuildTime)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		fmt.Fprintf(env.Stdout, "module %s %s\n", info.Main.Path, info.Main.Version)
	}
	return nil
}

// displayVersion prefixes valid semantic versions with "v" and passes
// anything else through unchanged.
func displayVersion(v string) string {
	if semver.IsValid("v" + v) {
		return semver.Canonical("v" + v)
	}
	if semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return v
}
