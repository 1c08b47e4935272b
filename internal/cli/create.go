package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/glexercises/newex/internal/config"
	"github.com/glexercises/newex/internal/patch"
	"github.com/glexercises/newex/internal/prompt"
	"github.com/glexercises/newex/internal/scaffold"
	"github.com/glexercises/newex/internal/vcs"
	"github.com/spf13/cobra"
)

// createOptions holds the per-run overrides of the create flow.
type createOptions struct {
	srcDir      string
	buildFile   string
	placeholder string
	shaders     bool
	noShaders   bool
	stage       bool
}

func addCreateFlags(cmd *cobra.Command, opts *createOptions) {
	cmd.Flags().StringVar(&opts.srcDir, "src-dir", "", "Directory holding the exercises (default from config: src)")
	cmd.Flags().StringVar(&opts.buildFile, "build-file", "", "Build file to register the exercise in (default from config: CMakeLists.txt)")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "Marker line to insert above (default from config)")
	cmd.Flags().BoolVar(&opts.shaders, "shaders", false, "Create the shader pair without asking")
	cmd.Flags().BoolVar(&opts.noShaders, "no-shaders", false, "Skip the shader pair without asking")
	cmd.Flags().BoolVar(&opts.stage, "stage", false, "Stage the new files and the build file in git")
	cmd.MarkFlagsMutuallyExclusive("shaders", "no-shaders")
}

func newCreateCmd(a *app) *cobra.Command {
	opts := &createOptions{}
	cmd := &cobra.Command{
		Use:     "create [name]",
		Aliases: []string{"new"},
		Short:   "Scaffold a new exercise and register it in the build file",
		Long: `Scaffold a new exercise and register it in the build file.

Creates <src>/<name>/<name>.cpp and, unless declined, <name>.vs and <name>.fs,
all empty. Then inserts a tab-indented "<name>" line above the placeholder
marker in CMakeLists.txt. The marker line is kept for the next exercise.

Missing inputs are asked for interactively.

Examples:
  newex create 1.2.1.hello_triangle
  newex create 1.4.1.textures --no-shaders
  echo -e "foo\nn" | newex create`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, a, opts, args)
		},
	}
	addCreateFlags(cmd, opts)
	return cmd
}

func runCreate(cmd *cobra.Command, a *app, opts *createOptions, args []string) error {
	settings, err := resolveSettings(cmd, a, opts)
	if err != nil {
		return err
	}

	p := prompt.New(a.stdin, a.stdout)
	ctx := cmd.Context()

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		name, err = p.ExerciseName(ctx)
		if err != nil {
			return err
		}
	}

	var withShaders bool
	switch {
	case opts.shaders:
		withShaders = true
	case opts.noShaders:
		withShaders = false
	default:
		withShaders, err = p.AddShaders(ctx, settings.Shader.Enabled)
		if err != nil {
			return err
		}
	}

	// Everything below works on absolute paths; --dir may be relative.
	root, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolving project dir %s: %w", a.dir, err)
	}

	out := newPrinter(a.stdout)

	s := scaffold.New(settings.Layout(root), a.logger)
	result, err := s.Create(name, withShaders)
	if errors.Is(err, scaffold.ErrExists) {
		newPrinter(a.stderr).Error(fmt.Sprintf("ERROR! Exercise %s already exists", name))
		return errReported
	}
	if err != nil {
		return err
	}
	printResult(out, result)

	buildFile := filepath.Join(root, settings.BuildFile)
	patched, err := patch.New(settings.Placeholder, a.logger).File(buildFile, name)
	if err != nil {
		return fmt.Errorf("updating %s (exercise directory %s was kept): %w", settings.BuildFile, result.Dir, err)
	}
	if patched.Markers > 1 {
		a.warnf("%s contains %d placeholder lines; %q was inserted above each of them", settings.BuildFile, patched.Markers, name)
	}

	if settings.Git.Stage {
		paths := append(append([]string{}, result.Files...), buildFile)
		if err := vcs.Stage(root, paths...); errors.Is(err, vcs.ErrNotRepository) {
			a.warnf("not staging files: %v", err)
		} else if err != nil {
			return fmt.Errorf("staging files: %w", err)
		} else {
			a.logger.Debug("staged files", "count", len(paths))
		}
	}

	out.Success(fmt.Sprintf("Exercise %s created successfully!", name))
	out.Plain(fmt.Sprintf("Your %s has been updated.", settings.BuildFile))
	return nil
}

// resolveSettings loads layered config and applies flags on top.
func resolveSettings(cmd *cobra.Command, a *app, opts *createOptions) (*config.Settings, error) {
	store, err := config.Load(a.dir)
	if err != nil {
		return nil, err
	}
	for _, f := range store.Files() {
		a.logger.Debug("loaded config file", "path", f)
	}

	settings := store.Settings()
	flags := cmd.Flags()
	if flags.Changed("src-dir") {
		settings.SourceDir = opts.srcDir
	}
	if flags.Changed("build-file") {
		settings.BuildFile = opts.buildFile
	}
	if flags.Changed("placeholder") {
		settings.Placeholder = opts.placeholder
	}
	if flags.Changed("stage") {
		settings.Git.Stage = opts.stage
	}

	result, err := settings.Validate()
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			msgs = append(msgs, issue.String())
		}
		return nil, fmt.Errorf("invalid settings:\n  %s", strings.Join(msgs, "\n  "))
	}
	return settings, nil
}

func printResult(out *printer, result *scaffold.Result) {
	out.Plain(fmt.Sprintf("Created exercise %s at %s%c", result.Name, result.Dir, filepath.Separator))
	for _, f := range result.Files {
		out.Dim("  " + filepath.Base(f))
	}
}
