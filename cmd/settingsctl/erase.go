package main

import (
	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/flash"
)

var eraseAll bool

func init() {
	cmd := newEraseCmd()
	cmd.Flags().BoolVar(&eraseAll, "all", false, "Erase the whole image instead of the settings region")
	rootCmd.AddCommand(cmd)
}

func newEraseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "erase <image>",
		Short: "Erase the settings region page by page",
		Long: `The erase command unlocks the controller, erases every page of the
settings region (or the whole image with --all), and locks it again.
Erased flash reads as 0xFF, so the next load reports an invalid block.

Example:
  settingsctl erase flash.img --length 70
  settingsctl erase flash.img --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runErase(args)
		},
	}
	return cmd
}

func runErase(args []string) error {
	p, err := resolveProfile()
	if err != nil {
		return err
	}
	if !eraseAll {
		if err := requireLength(); err != nil {
			return err
		}
	}

	printVerbose("Opening image: %s\n", args[0])

	file, err := openImage(args[0], p)
	if err != nil {
		return err
	}
	defer file.Close()

	layout := p.Layout()
	region := layout.Region(blockLen)
	if eraseAll {
		region = flash.Region{Base: p.Base(), Size: uint32(file.Size())}
	}
	pages := layout.Pages(region)

	ctrl := flash.NewController(file.Device(), layout)
	ctrl.Unlock()
	for page := 0; page < pages; page++ {
		addr := region.Base + uint32(page)*layout.PageSize
		printVerbose("Erasing page at 0x%08X\n", addr)
		ctrl.ErasePage(addr)
	}
	ctrl.Lock()

	printInfo("Erased %d pages at 0x%08X\n", pages, region.Base)
	return file.Close()
}
