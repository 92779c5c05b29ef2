// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package window

import (
	"testing"

	"github.com/igalia/vkrunner/internal/format"
)

func TestHasStencilDetectsCombinedFormats(t *testing.T) {
	d24s8, ok := format.LookupByName("D24_UNORM_S8_UINT")
	if !ok {
		t.Fatal("expected D24_UNORM_S8_UINT to be a known format")
	}
	if !hasStencil(d24s8) {
		t.Fatal("expected D24_UNORM_S8_UINT to report a stencil aspect")
	}

	d32, ok := format.LookupByName("D32_SFLOAT")
	if !ok {
		t.Fatal("expected D32_SFLOAT to be a known format")
	}
	if hasStencil(d32) {
		t.Fatal("D32_SFLOAT has no stencil aspect")
	}
}
