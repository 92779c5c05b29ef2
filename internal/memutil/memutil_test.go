// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package memutil

import (
	"testing"

	"github.com/igalia/vkrunner/internal/vk"
)

func testProps() vk.PhysicalDeviceMemoryProperties {
	var props vk.PhysicalDeviceMemoryProperties
	props.MemoryTypeCount = 3
	props.MemoryTypes[0] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyDeviceLocalBit}
	props.MemoryTypes[1] = vk.MemoryType{
		PropertyFlags: vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
	}
	props.MemoryTypes[2] = vk.MemoryType{PropertyFlags: vk.MemoryPropertyHostVisibleBit}
	return props
}

func TestFindMemoryTypePicksFirstMatchingBit(t *testing.T) {
	props := testProps()

	idx, ok := FindMemoryType(props, 0b111, vk.MemoryPropertyHostVisibleBit)
	if !ok || idx != 1 {
		t.Fatalf("expected type 1, got idx=%d ok=%v", idx, ok)
	}
}

func TestFindMemoryTypeRespectsTypeBitsMask(t *testing.T) {
	props := testProps()

	// type 1 excluded from the mask, so only type 2 qualifies.
	idx, ok := FindMemoryType(props, 0b100, vk.MemoryPropertyHostVisibleBit)
	if !ok || idx != 2 {
		t.Fatalf("expected type 2, got idx=%d ok=%v", idx, ok)
	}
}

func TestFindMemoryTypeNoMatch(t *testing.T) {
	props := testProps()

	_, ok := FindMemoryType(props, 0b111, vk.MemoryPropertyHostCachedBit)
	if ok {
		t.Fatal("expected no memory type to satisfy an unsupported flag")
	}
}

func TestIsCoherent(t *testing.T) {
	props := testProps()

	if IsCoherent(props, 0) {
		t.Error("type 0 is not host coherent")
	}
	if !IsCoherent(props, 1) {
		t.Error("type 1 is host coherent")
	}
	if IsCoherent(props, 2) {
		t.Error("type 2 is host visible but not coherent")
	}
}
