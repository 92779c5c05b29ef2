// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/igalia/vkrunner/internal/script"
)

func TestTargetEnvFormatsVulkanVersion(t *testing.T) {
	cases := []struct {
		major, minor uint32
		want         string
	}{
		{1, 0, "vulkan1.0"},
		{1, 1, "vulkan1.1"},
		{1, 2, "vulkan1.2"},
		{1, 3, "vulkan1.3"},
	}
	for _, c := range cases {
		if got := targetEnv(c.major, c.minor); got != c.want {
			t.Errorf("targetEnv(%d, %d) = %q, want %q", c.major, c.minor, got, c.want)
		}
	}
}

func TestStageExtensionMapsEveryKnownStage(t *testing.T) {
	if got := stageExtension(script.StageVertex); got != "vert" {
		t.Errorf("vertex extension = %q, want vert", got)
	}
	if got := stageExtension(script.StageFragment); got != "frag" {
		t.Errorf("fragment extension = %q, want frag", got)
	}
	if got := stageExtension(script.StageCompute); got != "comp" {
		t.Errorf("compute extension = %q, want comp", got)
	}
}
