// Package cmd provides the CLI commands for the ortbind tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carverml/ortbind/ort"
)

var (
	// Global flags
	libPath    string
	cacheDir   string
	noDownload bool
	runtimeVer string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ortbind",
	Short: "ortbind - ONNX Runtime model tooling",
	Long: `ortbind inspects ONNX models through the ONNX Runtime shared library
and fetches pretrained models from the public ONNX model zoo.

The runtime library is resolved automatically: an explicit --lib path wins,
then a cached download, then a fresh download of an official release.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&libPath, "lib", "",
		"Path to an existing ONNX Runtime shared library (skips download)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "",
		"Cache directory for downloaded runtime archives")
	rootCmd.PersistentFlags().BoolVar(&noDownload, "no-download", false,
		"Fail instead of downloading when no runtime library is cached")
	rootCmd.PersistentFlags().StringVar(&runtimeVer, "runtime-version", "",
		"ONNX Runtime release to download (default "+ort.DefaultRuntimeVersion+")")
}

// bootstrapOptions translates the global flags into bootstrap options.
func bootstrapOptions() []ort.BootstrapOption {
	var opts []ort.BootstrapOption
	if libPath != "" {
		opts = append(opts, ort.WithLibraryPath(libPath))
	}
	if cacheDir != "" {
		opts = append(opts, ort.WithCacheDir(cacheDir))
	}
	if noDownload {
		opts = append(opts, ort.WithDisableDownload(true))
	}
	if runtimeVer != "" {
		opts = append(opts, ort.WithRuntimeVersion(runtimeVer))
	}
	return opts
}
