package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/settings"
)

var (
	writeInput string
	writeForce bool
)

func init() {
	cmd := newWriteCmd()
	cmd.Flags().StringVarP(&writeInput, "input", "i", "", "File holding the block to store")
	cmd.Flags().BoolVar(&writeForce, "force", false, "Write even when the block matches flash")
	cmd.MarkFlagRequired("input")
	rootCmd.AddCommand(cmd)
}

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <image>",
		Short: "Store a block through the erase/program engine",
		Long: `The write command stores the input file as the settings block, running
the same compare, erase, and program sequence firmware would. An unchanged
block is detected and skipped unless --force is given.

With a checksum trailer (the default) the last two input bytes are
replaced by the computed CRC before programming.

Example:
  settingsctl write flash.img -i settings.bin
  settingsctl write flash.img -i settings.bin --force
  settingsctl write flash.img -i settings.bin --no-checksum`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(args)
		},
	}
	return cmd
}

func runWrite(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(writeInput)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if blockLen > 0 && len(data) != blockLen {
		return fmt.Errorf("input is %d bytes, --length says %d", len(data), blockLen)
	}
	if len(data) == 0 {
		return fmt.Errorf("input is empty")
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
	if writeForce {
		opts = append(opts, settings.WithForceWrite(true))
	}
	if verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts,
			settings.WithLogger(settings.NewSlogLogger(slog.New(handler))),
			settings.WithProgressCallback(func(pr settings.Progress) {
				printVerbose("[%s] page %d/%d\n", pr.Phase, pr.Page, pr.TotalPages)
			}),
		)
	}

	store := settings.New(file.Device(), data, opts...)
	store.Save()

	counters := file.Device().Counters()
	if counters.PagePrograms == 0 {
		printInfo("Unchanged: block already stored at 0x%08X, write skipped\n", store.Region().Base)
	} else {
		printInfo("Wrote %d bytes at 0x%08X: %d pages erased, %d pages programmed\n",
			len(data), store.Region().Base, counters.PageErases, counters.PagePrograms)
	}

	return file.Close()
}
