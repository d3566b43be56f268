package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/x3fkit/pkg/x3f"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Validate an X3F header and report basic metadata",
		Long: `The info command validates an X3F container file and displays header
metadata: format version, sensor geometry, rotation, and the camera's
white balance and color mode labels.

Example:
  x3finfo info SDIM0001.X3F
  x3finfo info SDIM0001.X3F --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Opening file: %s\n", path)

	r, err := x3f.Open(path, x3f.ParseOptions{})
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer r.Close()

	h := r.Header()
	dir := r.Directory()

	type headerInfo struct {
		Version      string `json:"version"`
		UniqueID     string `json:"unique_id"`
		MarkBits     uint32 `json:"mark_bits"`
		Columns      uint32 `json:"columns"`
		Rows         uint32 `json:"rows"`
		Rotation     uint32 `json:"rotation"`
		WhiteBalance string `json:"white_balance,omitempty"`
		ColorMode    string `json:"color_mode,omitempty"`
		Entries      uint32 `json:"directory_entries"`
		Size         int64  `json:"size"`
	}
	info := headerInfo{
		Version:  fmt.Sprintf("%d.%d", h.Major(), h.Minor()),
		UniqueID: fmt.Sprintf("%x", h.UniqueID),
		MarkBits: h.MarkBits,
		Columns:  h.Columns,
		Rows:     h.Rows,
		Rotation: h.Rotation,
		Entries:  dir.Count,
		Size:     r.Size(),
	}
	if h.HasExtended() {
		info.WhiteBalance = x3f.Label(h.WhiteBalance[:])
		info.ColorMode = x3f.Label(h.ColorMode[:])
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nX3F Information:\n")
	printInfo("  File: %s\n", path)
	if stat, err := os.Stat(path); err == nil {
		size := stat.Size()
		if size < 1024*1024 {
			printInfo("  Size: %.1f KB\n", float64(size)/1024)
		} else {
			printInfo("  Size: %.1f MB\n", float64(size)/(1024*1024))
		}
	}
	printInfo("  Version: %s\n", info.Version)
	printInfo("  Unique ID: %s\n", info.UniqueID)
	printInfo("  Geometry: %dx%d, rotation %d\n", h.Columns, h.Rows, h.Rotation)
	if info.WhiteBalance != "" {
		printInfo("  White balance: %s\n", info.WhiteBalance)
	}
	if info.ColorMode != "" {
		printInfo("  Color mode: %s\n", info.ColorMode)
	}
	printInfo("  Directory entries: %d\n", dir.Count)

	return nil
}
