// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vkcontext

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vk"
)

// featureFieldByName resolves a script "require feature" name (Vulkan's
// lowerCamelCase VkPhysicalDeviceFeatures member name, e.g.
// "robustBufferAccess") to the matching exported field of v, which must be
// a vk.PhysicalDeviceFeatures value or addressable struct.
func featureFieldByName(v reflect.Value, name string) (reflect.Value, bool) {
	f := v.FieldByNameFunc(func(fieldName string) bool {
		return strings.EqualFold(fieldName, name)
	})
	return f, f.IsValid()
}

func hasExtension(props []vk.ExtensionProperties, name string) bool {
	for _, p := range props {
		if cString(p.ExtensionName[:]) == name {
			return true
		}
	}
	return false
}

// deviceSupportsRequirements reports whether pd exposes every extension
// and feature req asks for. A device missing any one of them is skipped
// rather than failed, matching require's "not fail" failure mode.
func deviceSupportsRequirements(cmds *vk.Commands, pd vk.PhysicalDevice, req script.Requirements) bool {
	if len(req.Extensions) > 0 {
		supported, err := cmds.EnumerateDeviceExtensionProperties(pd)
		if err != nil {
			return false
		}
		for _, want := range req.Extensions {
			if !hasExtension(supported, want) {
				return false
			}
		}
	}

	if len(req.Features) > 0 {
		v := reflect.ValueOf(cmds.GetPhysicalDeviceFeatures(pd))
		for _, want := range req.Features {
			field, ok := featureFieldByName(v, want)
			if !ok || vk.Bool32(field.Uint()) != vk.True {
				return false
			}
		}
	}

	return true
}

// enabledFeatures builds a VkPhysicalDeviceFeatures with only the
// script-requested booleans set to VK_TRUE, rather than enabling every
// feature the selected device happens to support.
func enabledFeatures(req script.Requirements) (vk.PhysicalDeviceFeatures, error) {
	var feats vk.PhysicalDeviceFeatures
	v := reflect.ValueOf(&feats).Elem()
	for _, name := range req.Features {
		field, ok := featureFieldByName(v, name)
		if !ok {
			return feats, fmt.Errorf("unknown feature %q", name)
		}
		field.SetUint(uint64(vk.True))
	}
	return feats, nil
}

// cStringList null-terminates a set of strings and keeps the backing
// bytes and pointer array alive for the duration of a call expecting a
// PP...Names-shaped argument.
type cStringList struct {
	backing [][]byte
	ptrs    []uintptr
}

func newCStringList(names []string) *cStringList {
	if len(names) == 0 {
		return nil
	}
	l := &cStringList{backing: make([][]byte, len(names)), ptrs: make([]uintptr, len(names))}
	for i, name := range names {
		b := append([]byte(name), 0)
		l.backing[i] = b
		l.ptrs[i] = uintptr(unsafe.Pointer(&b[0]))
	}
	return l
}

func (l *cStringList) ptr() uintptr {
	if l == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(&l.ptrs[0]))
}

func (l *cStringList) count() uint32 {
	if l == nil {
		return 0
	}
	return uint32(len(l.ptrs))
}
