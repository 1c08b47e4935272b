package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/glexercises/newex/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("error already reported")

// SetBuildInfo records version metadata injected via ldflags.
func SetBuildInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// app carries the I/O and global flags shared by all commands of one run.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	dir     string
	verbose bool
	logger  *slog.Logger
}

// Run executes the command line in args and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.DiscardHandler),
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			newPrinter(stderr).Error("Error: " + err.Error())
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	opts := &createOptions{}

	root := &cobra.Command{
		Use:   branding.CLIName() + " [name]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates a new exercise under the project's source directory
(an empty .cpp file plus an optional .vs/.fs shader pair) and registers it in
CMakeLists.txt by inserting it above the placeholder marker line.

Running it without a subcommand is the same as "` + branding.CLIName() + ` create".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, a, opts, args)
		},
	}

	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Project root containing the source directory and build file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log each file operation to stderr")
	addCreateFlags(root, opts)

	root.AddCommand(newCreateCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// warnf prints a styled warning line to stderr.
func (a *app) warnf(format string, args ...any) {
	newPrinter(a.stderr).Warn("warning: " + fmt.Sprintf(format, args...))
}
