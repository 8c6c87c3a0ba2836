package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/settings"
)

var extractOutput string

func init() {
	cmd := newExtractCmd()
	cmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file for the block")
	cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Copy the settings block out of an image",
		Long: `The extract command loads the settings block and writes its raw bytes
(trailer included) to a file. The block is written even when checksum
verification fails; a warning goes to stderr in that case.

Example:
  settingsctl extract flash.img --length 70 -o settings.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}
	return cmd
}

func runExtract(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}
	if err := requireLength(); err != nil {
		return err
	}

	printVerbose("Opening image: %s\n", args[0])

	file, err := openImage(args[0], p)
	if err != nil {
		return err
	}
	defer file.Close()

	opts := []settings.Option{settings.WithLayout(p.Layout())}
	if noChecksum {
		opts = append(opts, settings.WithChecksum(false))
	}

	buf := make([]byte, blockLen)
	store := settings.New(file.Device(), buf, opts...)
	if !store.Load() {
		printError("checksum mismatch, extracting anyway\n")
	}

	if err := os.WriteFile(extractOutput, buf, 0o644); err != nil {
		return fmt.Errorf("failed to write block: %w", err)
	}

	printInfo("Extracted %d bytes from 0x%08X to %s\n", blockLen, store.Region().Base, extractOutput)
	return nil
}
