package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/settings"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <image>",
		Short: "Verify the stored block's checksum",
		Long: `The verify command loads the settings block and checks its CRC-16
trailer. It exits 0 when the block is valid and 1 when it is not.

Example:
  settingsctl verify flash.img --length 70`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}
	if err := requireLength(); err != nil {
		return err
	}
	if noChecksum {
		return fmt.Errorf("verify needs the checksum trailer; drop --no-checksum")
	}

	printVerbose("Opening image: %s\n", args[0])

	file, err := openImage(args[0], p)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, blockLen)
	store := settings.New(file.Device(), buf, settings.WithLayout(p.Layout()))
	if !store.ChecksumEnabled() {
		return fmt.Errorf("block of %d bytes is too short for a checksum trailer", blockLen)
	}

	if !store.Load() {
		return fmt.Errorf("checksum mismatch for %d-byte block at 0x%08X", blockLen, store.Region().Base)
	}

	printInfo("OK: %d-byte block at 0x%08X verifies\n", blockLen, store.Region().Base)
	return nil
}
