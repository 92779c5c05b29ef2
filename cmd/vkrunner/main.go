// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command vkrunner runs Vulkan shader-test scripts from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vkrunner",
		Short: "Run Vulkan shader-test scripts",
		Long: `vkrunner builds an off-screen Vulkan render target from a test
script, runs its draw/compute/probe commands, and reports pass, fail, or
skip.`,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newDevicesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
