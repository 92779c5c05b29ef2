// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"unsafe"

	"github.com/igalia/vkrunner/internal/format"
	"github.com/igalia/vkrunner/internal/script"
	"github.com/igalia/vkrunner/internal/vbo"
	"github.com/igalia/vkrunner/internal/vk"
)

// allStagesBit is the stage-flags union vkrunner hands every descriptor
// binding: scripts are small enough that narrowing stage visibility per
// binding buys nothing.
const allStagesBit = vk.ShaderStageVertexBit | vk.ShaderStageFragmentBit | vk.ShaderStageComputeBit

// Pipeline is one compiled VkPipeline plus the shader modules that feed
// it. Multiple script commands sharing a PipelineKey share one Pipeline.
type Pipeline struct {
	Key     *script.PipelineKey
	Handle  vk.Pipeline
	Modules []vk.ShaderModule
}

// Manager owns every pipeline-related object for one script run: the
// descriptor-set layouts and pool (shared across all pipelines), the
// pipeline layout, and the compiled VkPipeline per script.PipelineKey.
type Manager struct {
	cmds   *vk.Commands
	device vk.Device

	// apiVersionMajor/Minor select the --target-env the shader toolchain
	// compiles against; defaults to 1.1, the same version vkcontext
	// requests, when the script's Requirements carry no API version.
	apiVersionMajor, apiVersionMinor uint32

	DescriptorSetLayouts []vk.DescriptorSetLayout // indexed by desc_set
	Pool                 vk.DescriptorPool
	Layout               vk.PipelineLayout

	pipelines []*Pipeline

	// firstGraphicsPipeline and firstComputePipeline are the base
	// pipelines every later pipeline of the same kind derives from: the
	// first of each kind is created with ALLOW_DERIVATIVES, and every
	// subsequent one is created with DERIVATIVE and this handle as its
	// BasePipelineHandle. Zero means none of that kind exists yet.
	firstGraphicsPipeline vk.Pipeline
	firstComputePipeline  vk.Pipeline
}

// NewManager builds the descriptor layouts, pool, pipeline layout, and
// every pipeline the script's key list names. vboLayout describes the
// VertexData vertex format (nil if the script never draws from vertex
// data); renderPass is used for graphics pipelines.
func NewManager(cmds *vk.Commands, device vk.Device, s *script.Script, vboLayout *vbo.Vbo, renderPass vk.RenderPass) (*Manager, error) {
	m := &Manager{cmds: cmds, device: device}
	m.apiVersionMajor, m.apiVersionMinor = s.Requirements.EffectiveAPIVersion()

	if err := m.buildDescriptorState(s.Buffers); err != nil {
		return nil, err
	}
	if err := m.buildPipelineLayout(pushConstantSize(s)); err != nil {
		m.Close()
		return nil, err
	}
	for _, key := range s.Pipelines {
		p, err := m.buildPipeline(key, vboLayout, renderPass)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.pipelines = append(m.pipelines, p)
	}
	return m, nil
}

// pushConstantSize returns the smallest size covering every
// SetPushConstant command's write range.
func pushConstantSize(s *script.Script) uint32 {
	var end int
	for _, cmd := range s.Commands {
		if cmd.Kind != script.KindSetPushConstant {
			continue
		}
		spc := cmd.SetPushConstant
		if v := spc.Offset + len(spc.Data); v > end {
			end = v
		}
	}
	return uint32(end)
}

func (m *Manager) buildDescriptorState(buffers []script.Buffer) error {
	maxSet := -1
	for _, b := range buffers {
		if b.DescSet > maxSet {
			maxSet = b.DescSet
		}
	}
	if maxSet < 0 {
		return nil
	}

	byDescSet := make([][]script.Buffer, maxSet+1)
	for _, b := range buffers {
		byDescSet[b.DescSet] = append(byDescSet[b.DescSet], b)
	}

	var uboCount, ssboCount uint32
	m.DescriptorSetLayouts = make([]vk.DescriptorSetLayout, maxSet+1)

	for i, group := range byDescSet {
		bindings := make([]vk.DescriptorSetLayoutBinding, len(group))
		for j, b := range group {
			dtype := vk.DescriptorTypeUniformBuffer
			if b.Kind == script.SSBO {
				dtype = vk.DescriptorTypeStorageBuffer
				ssboCount++
			} else {
				uboCount++
			}
			bindings[j] = vk.DescriptorSetLayoutBinding{
				Binding:         uint32(b.Binding),
				DescriptorType:  dtype,
				DescriptorCount: 1,
				StageFlags:      allStagesBit,
			}
		}

		info := &vk.DescriptorSetLayoutCreateInfo{SType: vk.StructureTypeDescriptorSetLayoutCreateInfo}
		if len(bindings) > 0 {
			info.BindingCount = uint32(len(bindings))
			info.PBindings = uintptr(unsafe.Pointer(&bindings[0]))
		}
		layout, err := m.cmds.CreateDescriptorSetLayout(m.device, info)
		if err != nil {
			return fmt.Errorf("pipeline: descriptor set layout %d: %w", i, err)
		}
		m.DescriptorSetLayouts[i] = layout
	}

	var sizes []vk.DescriptorPoolSize
	if uboCount > 0 {
		sizes = append(sizes, vk.DescriptorPoolSize{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: uboCount})
	}
	if ssboCount > 0 {
		sizes = append(sizes, vk.DescriptorPoolSize{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: ssboCount})
	}
	if len(sizes) == 0 {
		return nil
	}

	pool, err := m.cmds.CreateDescriptorPool(m.device, &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFreeDescriptorSetBit,
		MaxSets:       uint32(maxSet + 1),
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    uintptr(unsafe.Pointer(&sizes[0])),
	})
	if err != nil {
		return fmt.Errorf("pipeline: descriptor pool: %w", err)
	}
	m.Pool = pool
	return nil
}

func (m *Manager) buildPipelineLayout(pushConstantSize uint32) error {
	var pcRanges []vk.PushConstantRange
	if pushConstantSize > 0 {
		pcRanges = []vk.PushConstantRange{{StageFlags: allStagesBit, Offset: 0, Size: pushConstantSize}}
	}

	info := &vk.PipelineLayoutCreateInfo{SType: vk.StructureTypePipelineLayoutCreateInfo}
	if len(m.DescriptorSetLayouts) > 0 {
		info.SetLayoutCount = uint32(len(m.DescriptorSetLayouts))
		info.PSetLayouts = uintptr(unsafe.Pointer(&m.DescriptorSetLayouts[0]))
	}
	if len(pcRanges) > 0 {
		info.PushConstantRangeCount = uint32(len(pcRanges))
		info.PPushConstantRanges = uintptr(unsafe.Pointer(&pcRanges[0]))
	}

	layout, err := m.cmds.CreatePipelineLayout(m.device, info)
	if err != nil {
		return fmt.Errorf("pipeline: pipeline layout: %w", err)
	}
	m.Layout = layout
	return nil
}

func (m *Manager) buildPipeline(key *script.PipelineKey, vboLayout *vbo.Vbo, renderPass vk.RenderPass) (*Pipeline, error) {
	modules, stages, err := m.buildShaderStages(key)
	if err != nil {
		return nil, err
	}

	if key.Type == script.Compute {
		first := m.firstComputePipeline == 0
		handle, err := m.buildComputePipeline(stages[0], first, m.firstComputePipeline)
		if err != nil {
			return nil, err
		}
		if first {
			m.firstComputePipeline = handle
		}
		return &Pipeline{Key: key, Handle: handle, Modules: modules}, nil
	}

	first := m.firstGraphicsPipeline == 0
	handle, err := m.buildGraphicsPipeline(key, stages, vboLayout, renderPass, first, m.firstGraphicsPipeline)
	if err != nil {
		return nil, err
	}
	if first {
		m.firstGraphicsPipeline = handle
	}
	return &Pipeline{Key: key, Handle: handle, Modules: modules}, nil
}

func (m *Manager) buildShaderStages(key *script.PipelineKey) ([]vk.ShaderModule, []vk.PipelineShaderStageCreateInfo, error) {
	var modules []vk.ShaderModule
	var stages []vk.PipelineShaderStageCreateInfo

	order := []script.Stage{script.StageVertex, script.StageFragment, script.StageCompute}
	bits := map[script.Stage]vk.ShaderStageFlags{
		script.StageVertex:   vk.ShaderStageVertexBit,
		script.StageFragment: vk.ShaderStageFragmentBit,
		script.StageCompute:  vk.ShaderStageComputeBit,
	}

	for _, stage := range order {
		var words []uint32
		if bin, ok := key.ShaderBin[stage]; ok {
			words = bin
		} else if src, ok := key.Shaders[stage]; ok {
			compiled, err := CompileStage(stage, src, false, m.apiVersionMajor, m.apiVersionMinor)
			if err != nil {
				return nil, nil, err
			}
			words = compiled
		} else {
			continue
		}

		mod, err := m.cmds.CreateShaderModule(m.device, &vk.ShaderModuleCreateInfo{
			SType:    vk.StructureTypeShaderModuleCreateInfo,
			CodeSize: uintptr(len(words) * 4),
			PCode:    uintptr(unsafe.Pointer(&words[0])),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("pipeline: shader module: %w", err)
		}
		modules = append(modules, mod)

		entry := []byte("main\x00")
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  bits[stage],
			Module: mod,
			PName:  uintptr(unsafe.Pointer(&entry[0])),
		})
	}

	if len(stages) == 0 {
		return nil, nil, fmt.Errorf("pipeline: pipeline key declares no shader stages")
	}
	return modules, stages, nil
}

func (m *Manager) buildComputePipeline(stage vk.PipelineShaderStageCreateInfo, first bool, base vk.Pipeline) (vk.Pipeline, error) {
	info := vk.ComputePipelineCreateInfo{
		SType:             vk.StructureTypeComputePipelineCreateInfo,
		Stage:             stage,
		Layout:            m.Layout,
		BasePipelineIndex: -1,
	}
	setDerivativeFlags(&info.Flags, first)
	if !first {
		info.BasePipelineHandle = base
	}

	handles, err := m.cmds.CreateComputePipelines(m.device, 0, []vk.ComputePipelineCreateInfo{info})
	if err != nil {
		return 0, fmt.Errorf("pipeline: compute pipeline: %w", err)
	}
	return handles[0], nil
}

func setDerivativeFlags(flags *vk.PipelineCreateFlags, first bool) {
	if first {
		*flags |= vk.PipelineCreateAllowDerivativesBit
	} else {
		*flags |= vk.PipelineCreateDerivativeBit
	}
}

func (m *Manager) buildGraphicsPipeline(key *script.PipelineKey, stages []vk.PipelineShaderStageCreateInfo, vboLayout *vbo.Vbo, renderPass vk.RenderPass, first bool, base vk.Pipeline) (vk.Pipeline, error) {
	bindings, attribs := vertexInputState(key, vboLayout)

	vertexInput := vk.PipelineVertexInputStateCreateInfo{SType: vk.StructureTypePipelineVertexInputStateCreateInfo}
	if len(bindings) > 0 {
		vertexInput.VertexBindingDescriptionCount = uint32(len(bindings))
		vertexInput.PVertexBindingDescriptions = uintptr(unsafe.Pointer(&bindings[0]))
	}
	if len(attribs) > 0 {
		vertexInput.VertexAttributeDescriptionCount = uint32(len(attribs))
		vertexInput.PVertexAttributeDescriptions = uintptr(unsafe.Pointer(&attribs[0]))
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: vk.PrimitiveTopology(key.Topology),
	}

	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeNone,
		FrontFace:   vk.FrontFaceCounterClockwise,
		LineWidth:   1.0,
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}

	colorBlendAttachment := vk.PipelineColorBlendAttachmentState{ColorWriteMask: vk.ColorComponentAll}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    uintptr(unsafe.Pointer(&colorBlendAttachment)),
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    uintptr(unsafe.Pointer(&dynamicStates[0])),
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             uintptr(unsafe.Pointer(&stages[0])),
		PVertexInputState:   uintptr(unsafe.Pointer(&vertexInput)),
		PInputAssemblyState: uintptr(unsafe.Pointer(&inputAssembly)),
		PViewportState:      uintptr(unsafe.Pointer(&viewport)),
		PRasterizationState: uintptr(unsafe.Pointer(&rasterization)),
		PMultisampleState:   uintptr(unsafe.Pointer(&multisample)),
		PColorBlendState:    uintptr(unsafe.Pointer(&colorBlend)),
		PDynamicState:       uintptr(unsafe.Pointer(&dynamicState)),
		Layout:              m.Layout,
		RenderPass:          renderPass,
		BasePipelineIndex:   -1,
	}
	setDerivativeFlags(&info.Flags, first)
	if !first {
		info.BasePipelineHandle = base
	}

	handles, err := m.cmds.CreateGraphicsPipelines(m.device, 0, []vk.GraphicsPipelineCreateInfo{info})
	if err != nil {
		return 0, fmt.Errorf("pipeline: graphics pipeline: %w", err)
	}
	return handles[0], nil
}

// vertexInputState builds the binding/attribute descriptions for a
// pipeline key: a single R32G32B32_SFLOAT attribute at location 0 for
// the Rectangle source, or the Vbo's packed attributes for VertexData.
func vertexInputState(key *script.PipelineKey, vboLayout *vbo.Vbo) ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription) {
	if key.Source == script.SourceRectangle {
		f, ok := format.LookupByVk(vk.FormatR32G32B32Sfloat)
		size := uint32(12)
		if ok {
			size = uint32(f.GetSize())
		}
		return []vk.VertexInputBindingDescription{{Binding: 0, Stride: size, InputRate: vk.VertexInputRateVertex}},
			[]vk.VertexInputAttributeDescription{{Location: 0, Binding: 0, Format: vk.FormatR32G32B32Sfloat, Offset: 0}}
	}

	if vboLayout == nil {
		return nil, nil
	}
	attribs := make([]vk.VertexInputAttributeDescription, len(vboLayout.Attribs))
	for i, a := range vboLayout.Attribs {
		attribs[i] = vk.VertexInputAttributeDescription{
			Location: a.Location,
			Binding:  0,
			Format:   a.Format.VkFormat,
			Offset:   a.Offset,
		}
	}
	return []vk.VertexInputBindingDescription{{Binding: 0, Stride: vboLayout.Stride, InputRate: vk.VertexInputRateVertex}}, attribs
}

// Find returns the built Pipeline for key, or nil if key was never
// registered with NewManager.
func (m *Manager) Find(key *script.PipelineKey) *Pipeline {
	for _, p := range m.pipelines {
		if p.Key == key {
			return p
		}
	}
	return nil
}

// Close destroys every object the manager owns, in reverse creation
// order. Safe to call on a partially built Manager.
func (m *Manager) Close() {
	for _, p := range m.pipelines {
		if p.Handle != 0 {
			m.cmds.DestroyPipeline(m.device, p.Handle)
		}
		for _, mod := range p.Modules {
			m.cmds.DestroyShaderModule(m.device, mod)
		}
	}
	if m.Layout != 0 {
		m.cmds.DestroyPipelineLayout(m.device, m.Layout)
	}
	if m.Pool != 0 {
		m.cmds.DestroyDescriptorPool(m.device, m.Pool)
	}
	for _, l := range m.DescriptorSetLayouts {
		if l != 0 {
			m.cmds.DestroyDescriptorSetLayout(m.device, l)
		}
	}
}
