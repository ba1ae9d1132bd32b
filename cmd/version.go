package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/killallgit/marathon-api/api/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Display detailed version information about the Marathon API.

This includes the version number, git commit hash, build time,
and runtime information.`,
		Args: cobra.NoArgs,
		Run:  runVersion,
	}
	versionCmd.Flags().BoolP("short", "s", false, "print just the version number")
	return versionCmd
}

func runVersion(cmd *cobra.Command, args []string) {
	short, _ := cmd.Flags().GetBool("short")

	out := cmd.OutOrStdout()
	if short {
		fmt.Fprintf(out, "v%s\n", version.Version)
		return
	}

	rule := strings.Repeat("-", 40)
	fmt.Fprintln(out, "Marathon API")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Version:      v%s\n", version.Version)
	fmt.Fprintf(out, "Git Commit:   %s\n", version.Commit)
	fmt.Fprintf(out, "Build Time:   %s\n", version.BuildDate)
	fmt.Fprintf(out, "Go Version:   %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out, rule)
}
