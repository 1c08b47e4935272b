package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/glexercises/newex/internal/config"
	"github.com/glexercises/newex/internal/scaffold"
	"github.com/spf13/cobra"
)

// listEntry represents an exercise for display.
type listEntry struct {
	Name    string   `json:"name"`
	Files   []string `json:"files"`
	Shaders bool     `json:"shaders"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		listJSON bool
		srcDir   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List existing exercises",
		Long:  `List the exercise directories under the source directory and which of their files exist.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load(a.dir)
			if err != nil {
				return err
			}
			settings := store.Settings()
			if cmd.Flags().Changed("src-dir") {
				settings.SourceDir = srcDir
			}
			layout := settings.Layout(a.dir)

			exercises, err := scaffold.List(layout)
			if err != nil {
				return fmt.Errorf("listing exercises: %w", err)
			}

			entries := make([]listEntry, 0, len(exercises))
			for _, ex := range exercises {
				e := listEntry{Name: ex.Name, Files: []string{}, Shaders: ex.HasShaders}
				if ex.HasSource {
					e.Files = append(e.Files, layout.SourceExt)
				}
				if ex.HasShaders {
					e.Files = append(e.Files, layout.VertexExt, layout.FragmentExt)
				}
				entries = append(entries, e)
			}

			if listJSON {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling exercises: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No exercises found under %s.\n", layout.SourceRoot())
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFILES")
			for _, e := range entries {
				files := strings.Join(e.Files, " ")
				if files == "" {
					files = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", e.Name, files)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&srcDir, "src-dir", "", "Directory holding the exercises (default from config: src)")
	return cmd
}
