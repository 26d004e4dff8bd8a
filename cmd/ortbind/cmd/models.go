package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carverml/ortbind/modelzoo"
)

var modelDir string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Work with the ONNX model zoo catalog",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloadable pretrained models",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, model := range modelzoo.Models() {
			fmt.Fprintf(out, "%-16s %s\n", model.Name, model.Filename)
		}
		return nil
	},
}

var modelsFetchCmd = &cobra.Command{
	Use:   "fetch <name>...",
	Short: "Download pretrained models into a local directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher, err := modelzoo.NewFetcher(modelDir)
		if err != nil {
			return err
		}

		models := make([]modelzoo.Model, 0, len(args))
		for _, name := range args {
			model, ok := modelzoo.Lookup(name)
			if !ok {
				return fmt.Errorf("unknown model %q (see \"ortbind models list\")", name)
			}
			models = append(models, model)
		}

		paths, err := fetcher.FetchAll(cmd.Context(), models)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	modelsFetchCmd.Flags().StringVar(&modelDir, "dir", "models",
		"Directory to store downloaded models in")
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsFetchCmd)
	rootCmd.AddCommand(modelsCmd)
}
