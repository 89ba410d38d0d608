package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"risp/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parse cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every cached parse result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		disk, err := driver.OpenDiskCache("risp")
		if err != nil {
			return err
		}
		if err := disk.DropAll(); err != nil {
			return fmt.Errorf("failed to clean %s: %w", disk.Dir(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", disk.Dir())
		return nil
	},
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the parse cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		disk, err := driver.OpenDiskCache("risp")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), disk.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
	cacheCmd.AddCommand(cacheDirCmd)
}
