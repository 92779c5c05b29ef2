// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/igalia/vkrunner"
)

// manifest describes a batch of scripts to run together, with one set of
// optional framebuffer overrides applied to every script. Paths are
// resolved relative to the manifest file's directory.
type manifest struct {
	Width              int      `yaml:"width"`
	Height             int      `yaml:"height"`
	ColorFormat        string   `yaml:"color_format"`
	DepthStencilFormat string   `yaml:"depth_stencil_format"`
	Scripts            []string `yaml:"scripts"`
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Run every script listed in a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := args[0]
			data, err := os.ReadFile(manifestPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", manifestPath, err)
			}

			var m manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parsing %s: %w", manifestPath, err)
			}
			if len(m.Scripts) == 0 {
				return fmt.Errorf("%s: manifest lists no scripts", manifestPath)
			}

			baseDir := filepath.Dir(manifestPath)

			passed, failed, skipped := 0, 0, 0
			for _, scriptPath := range m.Scripts {
				fullPath := scriptPath
				if !filepath.IsAbs(fullPath) {
					fullPath = filepath.Join(baseDir, scriptPath)
				}

				status, err := runOne(fullPath, m)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", fullPath, err)
					failed++
					continue
				}

				fmt.Printf("%s: %s\n", fullPath, status)
				switch status {
				case vkrunner.StatusPass:
					passed++
				case vkrunner.StatusSkip:
					skipped++
				default:
					failed++
				}
			}

			fmt.Printf("\n%d passed, %d failed, %d skipped\n", passed, failed, skipped)
			if failed > 0 {
				os.Exit(exitFail)
			}
			return nil
		},
	}
	return cmd
}

func runOne(path string, m manifest) (vkrunner.Status, error) {
	f, err := os.Open(path)
	if err != nil {
		return vkrunner.StatusFail, err
	}
	defer f.Close()

	result, err := vkrunner.Run(f, vkrunner.Config{
		Width:              m.Width,
		Height:             m.Height,
		ColorFormat:        m.ColorFormat,
		DepthStencilFormat: m.DepthStencilFormat,
		OnError: func(message string) {
			fmt.Fprintf(os.Stderr, "  %s\n", message)
		},
	})
	if err != nil {
		return vkrunner.StatusFail, err
	}
	return result.Status, nil
}
