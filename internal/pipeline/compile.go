// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package pipeline turns a script's declared pipelines and buffers into
// the Vulkan objects a command needs to execute: compiled shader
// modules, one descriptor set layout per descriptor-set index and one
// descriptor pool shared by every pipeline (the engine allocates the sets
// themselves), a pipeline layout carrying the push-constant range, and the
// graphics or compute VkPipeline itself.
package pipeline

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"

	"github.com/igalia/vkrunner/internal/script"
)

// toolBinary resolves one shader-toolchain binary name, letting the
// matching env var override the default the way piglit's own test
// harness does for the C vkrunner.
func toolBinary(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

// stageExtension maps a shader stage to the file extension
// glslangValidator infers its stage from.
func stageExtension(stage script.Stage) string {
	switch stage {
	case script.StageVertex:
		return "vert"
	case script.StageFragment:
		return "frag"
	case script.StageCompute:
		return "comp"
	default:
		return "glsl"
	}
}

// targetEnv formats the --target-env value glslangValidator/spirv-as
// expect for a given Vulkan API version, e.g. targetEnv(1, 2) ==
// "vulkan1.2".
func targetEnv(apiMajor, apiMinor uint32) string {
	return fmt.Sprintf("vulkan%d.%d", apiMajor, apiMinor)
}

// CompileStage turns GLSL source (or an assembly listing, via spirv-as)
// into a SPIR-V binary, following the style of cogentcore-core's
// build.go: shell out, capture combined output, and fold it into the
// returned error so a syntax error in the shader source is visible to
// the caller. apiMajor/apiMinor select the --target-env the toolchain
// compiles against.
func CompileStage(stage script.Stage, source string, assembly bool, apiMajor, apiMinor uint32) ([]uint32, error) {
	tmp, err := os.CreateTemp("", "vkrunner-shader-*."+stageExtension(stage))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(source); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	out, err := os.CreateTemp("", "vkrunner-spv-*.spv")
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	env := targetEnv(apiMajor, apiMinor)

	var cmd *exec.Cmd
	if assembly {
		cmd = exec.Command(toolBinary("PIGLIT_SPIRV_AS_BINARY", "spirv-as"), "--target-env", env, "-o", out.Name(), tmp.Name())
	} else {
		cmd = exec.Command(toolBinary("PIGLIT_GLSLANG_VALIDATOR_BINARY", "glslangValidator"),
			"-V", "--target-env", env, "-S", stageExtension(stage), "-o", out.Name(), tmp.Name())
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s failed: %s", cmd.Args[0], string(output))
	}

	data, err := os.ReadFile(out.Name())
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading compiled shader: %w", err)
	}
	return bytesToWords(data)
}

func bytesToWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("pipeline: SPIR-V binary size %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, words); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return words, nil
}

// Disassemble renders a SPIR-V binary back to text via spirv-dis. Neither
// the engine nor the CLI calls it.
func Disassemble(words []uint32) (string, error) {
	data := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[i*4:], w)
	}
	tmp, err := os.CreateTemp("", "vkrunner-spv-*.spv")
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("pipeline: %w", err)
	}
	tmp.Close()

	cmd := exec.Command(toolBinary("PIGLIT_SPIRV_DIS_BINARY", "spirv-dis"), tmp.Name())
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pipeline: spirv-dis failed: %s", string(output))
	}
	return string(output), nil
}
