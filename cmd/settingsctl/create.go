package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/flashsim"
	"github.com/ch32-tools/settingsstore/imagefile"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Create a blank flash image for the selected profile",
		Long: `The create command writes a new image file containing blank flash
(every byte 0xFF) sized for the profile's flash array.

Example:
  settingsctl create flash.img
  settingsctl create flash.img --profile-file mypart.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args)
		},
	}
	return cmd
}

func runCreate(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}
	path := args[0]

	printVerbose("Creating image: %s (%d bytes, %d-byte pages)\n", path, p.FlashSize, p.PageSize)

	err = imagefile.Create(path, int(p.FlashSize),
		flashsim.WithBase(p.Base()),
		flashsim.WithPageSize(p.PageSize),
	)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	printInfo("Created %s: %d bytes of blank flash at 0x%08X\n", path, p.FlashSize, p.Base())
	return nil
}
