// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/igalia/vkrunner"
)

// Exit codes follow the automake/piglit skip convention: 0 pass, 1 fail,
// 77 skip (no suitable device).
const (
	exitPass = 0
	exitFail = 1
	exitSkip = 77
)

func newRunCmd() *cobra.Command {
	var (
		width, height      int
		colorFormat        string
		depthStencilFormat string
		deviceID           int
	)

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a single test script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			cfg := vkrunner.Config{
				Width:              width,
				Height:             height,
				ColorFormat:        colorFormat,
				DepthStencilFormat: depthStencilFormat,
				OnError: func(message string) {
					fmt.Fprintln(os.Stderr, message)
				},
			}
			if deviceID >= 0 {
				cfg.DeviceID = &deviceID
			}

			result, runErr := vkrunner.Run(f, cfg)
			if runErr != nil {
				return fmt.Errorf("%s: %w", path, runErr)
			}

			fmt.Printf("%s: %s\n", path, result.Status)
			os.Exit(exitCodeFor(result.Status))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "framebuffer width (default 250)")
	cmd.Flags().IntVar(&height, "height", 0, "framebuffer height (default 250)")
	cmd.Flags().StringVar(&colorFormat, "color-format", "", "color attachment format name (default B8G8R8A8_UNORM)")
	cmd.Flags().StringVar(&depthStencilFormat, "depth-stencil-format", "", "depth/stencil attachment format name")
	cmd.Flags().IntVar(&deviceID, "device", -1, "physical device index to run against")

	return cmd
}

func exitCodeFor(status vkrunner.Status) int {
	switch status {
	case vkrunner.StatusPass:
		return exitPass
	case vkrunner.StatusSkip:
		return exitSkip
	default:
		return exitFail
	}
}
