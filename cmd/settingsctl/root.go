package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/flashsim"
	"github.com/ch32-tools/settingsstore/imagefile"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	profileName string
	profileFile string
	blockLen    int
	noChecksum  bool
)

var rootCmd = &cobra.Command{
	Use:   "settingsctl",
	Short: "Inspect and manipulate flash images holding a settings block",
	Long: `settingsctl operates on flash image files for parts that persist a
settings block in the last pages of program flash. It can create blank
images, write and extract blocks through the full erase/program engine,
verify checksums, and dump raw flash contents.

The flash geometry comes from a profile: a builtin part name (--profile)
or a YAML file (--profile-file).`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&profileName, "profile", "ch32v003", "Builtin flash geometry profile")
	rootCmd.PersistentFlags().
		StringVar(&profileFile, "profile-file", "", "YAML flash geometry profile (overrides --profile)")
	rootCmd.PersistentFlags().IntVar(&blockLen, "length", 0, "Settings block length in bytes")
	rootCmd.PersistentFlags().
		BoolVar(&noChecksum, "no-checksum", false, "Treat the block as raw bytes without a CRC trailer")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// requireLength validates the --length flag for commands that need it.
func requireLength() error {
	if blockLen <= 0 {
		return fmt.Errorf("--length must be a positive number of bytes")
	}
	return nil
}

// openImage opens an image with the profile's geometry applied.
func openImage(path string, p Profile) (*imagefile.File, error) {
	file, err := imagefile.Open(path,
		flashsim.WithBase(p.Base()),
		flashsim.WithPageSize(p.PageSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return file, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
