// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcontext

import (
	"testing"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

func TestEnabledFeaturesSetsOnlyRequestedBooleans(t *testing.T) {
	feats, err := enabledFeatures(script.Requirements{Features: []string{"robustBufferAccess", "wideLines"}})
	if err != nil {
		t.Fatalf("enabledFeatures: %v", err)
	}
	if feats.RobustBufferAccess != vk.True || feats.WideLines != vk.True {
		t.Fatalf("expected the requested features to be enabled, got %+v", feats)
	}
	if feats.GeometryShader != vk.False || feats.DepthClamp != vk.False {
		t.Fatalf("expected every other feature to stay disabled, got %+v", feats)
	}
}

func TestEnabledFeaturesRejectsUnknownName(t *testing.T) {
	if _, err := enabledFeatures(script.Requirements{Features: []string{"notARealFeature"}}); err == nil {
		t.Fatal("expected an error for an unrecognised feature name")
	}
}

func TestHasExtensionMatchesNullTerminatedName(t *testing.T) {
	var props vk.ExtensionProperties
	copy(props.ExtensionName[:], "VK_KHR_maintenance1\x00garbage")

	if !hasExtension([]vk.ExtensionProperties{props}, "VK_KHR_maintenance1") {
		t.Error("expected hasExtension to find the extension before the NUL terminator")
	}
	if hasExtension([]vk.ExtensionProperties{props}, "VK_KHR_maintenance2") {
		t.Error("expected hasExtension to reject an unrelated name")
	}
}

func TestCStringListRoundTripsNames(t *testing.T) {
	l := newCStringList([]string{"VK_KHR_maintenance1", "VK_KHR_maintenance2"})
	if l.count() != 2 {
		t.Fatalf("expected count 2, got %d", l.count())
	}
	if l.ptr() == 0 {
		t.Fatal("expected a non-null pointer for a non-empty list")
	}

	if empty := newCStringList(nil); empty.count() != 0 || empty.ptr() != 0 {
		t.Fatal("expected a nil list to report zero count and a null pointer")
	}
}
