package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ch32-tools/settingsstore/settings"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Report region geometry and block status",
		Long: `The info command reports where a settings block of the given length
lives in flash (region base, aligned size, page count) and whether the
stored block passes checksum verification.

Example:
  settingsctl info flash.img --length 70
  settingsctl info flash.img --length 70 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type imageInfo struct {
	Image     string `json:"image"`
	Profile   string `json:"profile"`
	FlashSize int    `json:"flash_size"`
	PageSize  uint32 `json:"page_size"`
	Length    int    `json:"length"`
	Base      string `json:"base"`
	Size      uint32 `json:"size"`
	Pages     int    `json:"pages"`
	Checksum  bool   `json:"checksum"`
	Valid     bool   `json:"valid"`
}

func runInfo(args []string) error {
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

	layout := p.Layout()
	opts := []settings.Option{settings.WithLayout(layout)}
	if noChecksum {
		opts = append(opts, settings.WithChecksum(false))
	}

	buf := make([]byte, blockLen)
	store := settings.New(file.Device(), buf, opts...)
	valid := store.Load()
	region := store.Region()

	info := imageInfo{
		Image:     args[0],
		Profile:   p.Name,
		FlashSize: file.Size(),
		PageSize:  p.PageSize,
		Length:    blockLen,
		Base:      fmt.Sprintf("0x%08X", region.Base),
		Size:      region.Size,
		Pages:     layout.Pages(region),
		Checksum:  store.ChecksumEnabled(),
		Valid:     valid,
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nImage Information:\n")
	printInfo("  File: %s\n", info.Image)
	printInfo("  Profile: %s\n", info.Profile)
	printInfo("  Flash size: %d bytes\n", info.FlashSize)
	printInfo("  Page size: %d bytes\n", info.PageSize)
	printInfo("\nSettings Region:\n")
	printInfo("  Block length: %d bytes\n", info.Length)
	printInfo("  Base: %s\n", info.Base)
	printInfo("  Size: %d bytes (%d pages)\n", info.Size, info.Pages)
	printInfo("  Checksum: %v\n", info.Checksum)
	printInfo("  Valid: %v\n", info.Valid)

	return nil
}
