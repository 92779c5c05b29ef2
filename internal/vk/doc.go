// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides the pure-Go Vulkan bindings vkrunner's engine is
// built on, using goffi for cross-platform FFI calls without cgo.
//
// # goffi Calling Convention
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, not the values themselves. For scalar types this means passing
// &value; for pointer-typed Vulkan parameters (const void*, handles taken
// by reference) it means passing a pointer to the pointer.
//
// Function pointers are loaded dynamically from libvulkan.so.1 (Linux),
// vulkan-1.dll (Windows) or libvulkan.dylib (macOS via MoltenVK), in three
// stages mirroring the Vulkan spec's own loading hierarchy:
// LoadGlobal (pre-instance), LoadInstance (after vkCreateInstance),
// LoadDevice (after vkCreateDevice).
package vk
