package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carverml/ortbind/ort"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model.onnx>",
	Short: "Describe a model's inputs and outputs",
	Long: `Loads the model through ONNX Runtime and prints each declared input
and output with its element type and dimensions. Dynamic dimensions are
shown as "dyn".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := ort.AcquireEnvironmentWithBootstrap("ortbind", bootstrapOptions()...)
		if err != nil {
			return err
		}
		defer func() { _ = env.Release() }()

		session, err := env.NewSessionBuilder(args[0]).Build()
		if err != nil {
			return err
		}
		defer func() { _ = session.Destroy() }()

		inputs, err := session.ReadInputs()
		if err != nil {
			return err
		}
		outputs, err := session.ReadOutputs()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "model: %s\n", args[0])
		fmt.Fprintf(out, "runtime: %s\n\n", ort.GetVersionString())

		fmt.Fprintln(out, "inputs:")
		for _, info := range inputs {
			fmt.Fprintf(out, "  %-30s %-10s %s\n", info.Name, info.ElementType, info.Dims)
		}
		fmt.Fprintln(out, "outputs:")
		for _, info := range outputs {
			fmt.Fprintf(out, "  %-30s %-10s %s\n", info.Name, info.ElementType, info.Dims)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the resolved ONNX Runtime version",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := ort.AcquireEnvironmentWithBootstrap("ortbind", bootstrapOptions()...)
		if err != nil {
			return err
		}
		defer func() { _ = env.Release() }()

		fmt.Fprintln(cmd.OutOrStdout(), ort.GetVersionString())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}
