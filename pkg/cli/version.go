package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show calcd version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, commit, date := resolveBuildInfo()
		fmt.Printf("calcd %s (%s, %s)\n", version, commit, date)
		fmt.Printf("%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// resolveBuildInfo merges the ldflags-injected values with whatever the Go
// toolchain embedded, so 'go install' builds still report something useful.
func resolveBuildInfo() (version, commit, date string) {
	version, commit, date = Version, Commit, BuildDate

	if info, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" && info.Main.Version != "" {
			version = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "none" {
					commit = setting.Value
				}
			case "vcs.time":
				if date == "unknown" {
					date = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					commit += "-dirty"
				}
			}
		}
	}
	return version, commit, date
}
