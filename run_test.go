// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkrunner

import (
	"errors"
	"strings"
	"testing"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vkcontext"
)

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusPass: "pass",
		StatusFail: "fail",
		StatusSkip: "skip",
		Status(99): "unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}

func TestRunRejectsUnparsableScript(t *testing.T) {
	_, err := Run(strings.NewReader("bogus command\n"), Config{})
	if !errors.Is(err, ErrScriptParse) {
		t.Fatalf("expected ErrScriptParse, got %v", err)
	}
}

func TestRunScriptWrapsDeviceCreationFailureAsErrVulkan(t *testing.T) {
	s := &script.Script{}
	_, err := RunScript(s, Config{})
	if err == nil {
		t.Fatal("expected an error with no Vulkan loader present")
	}
	if !errors.Is(err, ErrVulkan) && !errors.Is(err, vkcontext.ErrDeviceSelection) {
		t.Fatalf("expected ErrVulkan or ErrDeviceSelection, got %v", err)
	}
}

func TestRunRejectsUnknownColorFormat(t *testing.T) {
	_, err := Run(strings.NewReader("clear\n"), Config{ColorFormat: "NOT_A_FORMAT"})
	if err == nil {
		t.Fatal("expected an error for an unknown color format")
	}
}

func TestRunRejectsUnknownDepthStencilFormat(t *testing.T) {
	_, err := Run(strings.NewReader("clear\n"), Config{DepthStencilFormat: "NOT_A_FORMAT"})
	if err == nil {
		t.Fatal("expected an error for an unknown depth/stencil format")
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("expected a default logger to be installed at init")
	}
}
