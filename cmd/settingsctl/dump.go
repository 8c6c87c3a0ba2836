package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <image>",
		Short: "Hex dump of the settings region",
		Long: `The dump command prints a hex dump of the settings region, or of the
whole image when no --length is given.

Example:
  settingsctl dump flash.img --length 70
  settingsctl dump flash.img`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}

	printVerbose("Opening image: %s\n", args[0])

	file, err := openImage(args[0], p)
	if err != nil {
		return err
	}
	defer file.Close()

	start := p.Base()
	data := file.Bytes()
	if blockLen > 0 {
		region := p.Layout().Region(blockLen)
		window, err := file.Slice(region.Base, int(region.Size))
		if err != nil {
			return err
		}
		start = region.Base
		data = window
	}

	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		printInfo("0x%08X  % X\n", start+uint32(off), data[off:end])
	}

	return nil
}
