package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctxgrab [flags] <input>...",
		Short: "Collect source files into a Markdown context block",
		Long: `ctxgrab resolves each input (a path, a directory, a glob pattern or part of
a file name) to files under the current directory, then copies their
contents to the clipboard as Markdown, ready to paste into an LLM prompt.

With --depth or --tags each file is reduced to a structural skeleton
derived from its syntax tree instead of its full text. The two flags
cannot be combined. A --depth flag overrides tags enabled in the config
file, and tags in the config file win over a depth from the same file.

Inputs that match nothing, or more than one file, stop the run with a
report and exit status 1.`,
		Example: `  ctxgrab main.go internal/parser
  ctxgrab 'src/**/*.rs' --depth 3
  ctxgrab handler --tags --stdout`,
		Version:       version,
		Args:          validateInputs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          RunGrab,
	}

	flags := rootCmd.Flags()
	flags.IntP("depth", "d", 0, "Emit a syntax-tree skeleton limited to this depth instead of full content")
	flags.Bool("tags", false, "Emit definition lines instead of full content (not combinable with --depth)")
	flags.Bool("stdout", false, "Print to stdout instead of copying to the clipboard")
	flags.Bool("json", false, "Print a machine-readable JSON document to stdout")
	flags.Bool("no-color", false, "Disable colored diagnostics")
	flags.Int("concurrency", 0, "Maximum parallel workers (default: number of CPUs)")
	flags.String("config", "", "Path to a config file (default: ./"+configFileName+")")
	flags.Bool("list-languages", false, "List languages supported for skeletons and exit")

	return rootCmd
}
