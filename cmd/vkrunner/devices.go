// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vkcontext"
)

func newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List Vulkan physical devices and their indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := vkcontext.New(vkcontext.Options{
				Requirements: script.Requirements{DeviceID: -1},
			})
			if err != nil {
				return fmt.Errorf("opening a Vulkan instance: %w", err)
			}
			defer ctx.Close()

			devices, err := ctx.ListDevices()
			if err != nil {
				return err
			}

			for i, d := range devices {
				fmt.Printf("%d: %s (api %d.%d.%d)\n", i, deviceName(d.DeviceName[:]),
					d.APIVersion>>22, (d.APIVersion>>12)&0x3ff, d.APIVersion&0xfff)
			}
			return nil
		},
	}
}

func deviceName(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
