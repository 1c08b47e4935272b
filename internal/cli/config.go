package cli

import (
	"fmt"

	"github.com/glexercises/newex/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage settings",
		Long: `Read and write newex settings.

Settings are layered, later sources winning:
  defaults < ~/.newex/config.yaml < ./.newex.yaml < NEWEX_* environment < flags

"config set" writes to the user file.`,
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value in the user config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := config.Set(key, value); err != nil {
				return fmt.Errorf("setting config key %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a resolved configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !config.IsKnownKey(args[0]) {
				return fmt.Errorf("%w %q", config.ErrUnknownKey, args[0])
			}
			store, err := config.Load(a.dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Get(args[0]))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show all resolved settings and where they came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(a.dir)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			for _, key := range config.Keys {
				out.Plain(fmt.Sprintf("%s = %s", key, store.Get(key)))
			}
			if files := store.Files(); len(files) > 0 {
				out.Dim("\nConfig files:")
				for _, f := range files {
					out.Dim("  " + f)
				}
			}
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Validate config files against the schema",
		Long: `Validate a config file against the schema. Without an argument, validate
every config file that applies to the project plus the resolved settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout())

			var files []string
			if len(args) == 1 {
				files = args
			} else {
				store, err := config.Load(a.dir)
				if err != nil {
					return err
				}
				files = store.Files()
				result, err := store.Settings().Validate()
				if err != nil {
					return err
				}
				if !reportValidation(out, "resolved settings", result) {
					return errReported
				}
			}

			valid := true
			for _, f := range files {
				result, err := config.ValidateFile(f)
				if err != nil {
					return err
				}
				if !reportValidation(out, f, result) {
					valid = false
				}
			}
			if !valid {
				return errReported
			}
			return nil
		},
	})

	return configCmd
}

// reportValidation prints the outcome for one source and reports validity.
func reportValidation(out *printer, source string, result *config.ValidationResult) bool {
	if result.Valid {
		out.Success(source + ": valid")
		return true
	}
	out.Error(source + ": invalid")
	for _, issue := range result.Issues {
		out.Plain("  - " + issue.String())
	}
	return false
}
