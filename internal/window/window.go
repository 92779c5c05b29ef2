// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package window owns the off-screen colour (and optional depth/stencil)
// framebuffer a script renders into, plus the two render passes used to
// enter it (a DONT_CARE pass for the first command-buffer of a run, and a
// LOAD pass for every subsequent render pass so earlier draws survive)
// and the linear host-visible buffer used to read pixels back. One object
// owns image/view/render-pass/framebuffer lifetime together, sized once
// as a fixed off-screen target instead of a cache keyed by swapchain
// configuration.
package window

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/igalia/vkrunner/internal/format"
	"github.com/igalia/vkrunner/internal/memutil"
	"github.com/igalia/vkrunner/internal/vk"
)

// Config describes the off-screen target to create.
type Config struct {
	Width, Height int
	ColorFormat   *format.Format
	DepthStencil  *format.Format // nil if the script needs no depth/stencil
}

// Window is the render target a script's draw and probe commands act on.
type Window struct {
	cmds   *vk.Commands
	device vk.Device
	props  vk.PhysicalDeviceMemoryProperties

	Config Config

	ColorImage vk.Image
	ColorView  vk.ImageView
	colorMem   memutil.Allocation

	DepthImage vk.Image
	DepthView  vk.ImageView
	depthMem   memutil.Allocation

	// readbackMem backs Readback; whether it must be explicitly
	// invalidated before the CPU reads it depends on IsCoherent.
	Readback    vk.Buffer
	readbackMem memutil.Allocation
	IsCoherent  bool
	Stride      int

	// RenderPassClear starts a run's first render pass: the colour
	// attachment's previous contents are discarded.
	RenderPassClear vk.RenderPass
	// RenderPassLoad starts every later render pass of the same run, in
	// whichever command buffer: the colour attachment's contents are
	// preserved.
	RenderPassLoad vk.RenderPass

	Framebuffer vk.Framebuffer
}

// New builds the off-screen target described by cfg. It fails (the
// caller should treat this as a script FAIL, not a skip) if either
// requested format lacks the capability Vulkan requires of it.
func New(cmds *vk.Commands, device vk.Device, pd vk.PhysicalDevice, props vk.PhysicalDeviceMemoryProperties, cfg Config) (*Window, error) {
	if err := checkColorCapable(cmds, pd, cfg.ColorFormat); err != nil {
		return nil, err
	}
	if cfg.DepthStencil != nil {
		if err := checkDepthStencilCapable(cmds, pd, cfg.DepthStencil); err != nil {
			return nil, err
		}
	}

	w := &Window{cmds: cmds, device: device, props: props, Config: cfg}

	if err := w.createColorImage(); err != nil {
		return nil, err
	}
	if cfg.DepthStencil != nil {
		if err := w.createDepthImage(); err != nil {
			w.Close()
			return nil, err
		}
	}
	if err := w.createReadbackBuffer(); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.createRenderPasses(); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.createFramebuffer(); err != nil {
		w.Close()
		return nil, err
	}

	return w, nil
}

func checkColorCapable(cmds *vk.Commands, pd vk.PhysicalDevice, f *format.Format) error {
	required := vk.FormatFeatureColorAttachmentBit | vk.FormatFeatureBlitSrcBit
	props := cmds.GetPhysicalDeviceFormatProperties(pd, f.VkFormat)
	if vk.FormatFeatureFlags(props.OptimalTilingFeatures)&required != required {
		return fmt.Errorf("window: format %s does not support colour attachment + blit source usage", f.Name)
	}
	return nil
}

func checkDepthStencilCapable(cmds *vk.Commands, pd vk.PhysicalDevice, f *format.Format) error {
	required := vk.FormatFeatureDepthStencilAttachmentBit
	props := cmds.GetPhysicalDeviceFormatProperties(pd, f.VkFormat)
	if vk.FormatFeatureFlags(props.OptimalTilingFeatures)&required != required {
		return fmt.Errorf("window: format %s does not support depth/stencil attachment usage", f.Name)
	}
	return nil
}

func (w *Window) createColorImage() error {
	info := &vk.ImageCreateInfo{
		SType:       vk.StructureTypeImageCreateInfo,
		ImageType:   vk.ImageType2D,
		Format:      w.Config.ColorFormat.VkFormat,
		Extent:      vk.Extent3D{Width: uint32(w.Config.Width), Height: uint32(w.Config.Height), Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     vk.SampleCount1Bit,
		Tiling:      vk.ImageTilingOptimal,
		Usage:       vk.ImageUsageTransferSrcBit | vk.ImageUsageColorAttachmentBit,
		SharingMode: vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	img, err := w.cmds.CreateImage(w.device, info)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.ColorImage = img

	mem, err := memutil.AllocateForImage(w.cmds, w.device, w.props, img, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return fmt.Errorf("window: colour image allocation: %w", err)
	}
	w.colorMem = mem

	view, err := w.cmds.CreateImageView(w.device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img,
		ViewType: vk.ImageViewType2D,
		Format:   w.Config.ColorFormat.VkFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectColorBit,
			LevelCount: 1,
			LayerCount: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.ColorView = view
	return nil
}

func (w *Window) createDepthImage() error {
	info := &vk.ImageCreateInfo{
		SType:       vk.StructureTypeImageCreateInfo,
		ImageType:   vk.ImageType2D,
		Format:      w.Config.DepthStencil.VkFormat,
		Extent:      vk.Extent3D{Width: uint32(w.Config.Width), Height: uint32(w.Config.Height), Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     vk.SampleCount1Bit,
		Tiling:      vk.ImageTilingOptimal,
		Usage:       vk.ImageUsageDepthStencilAttachmentBit,
		SharingMode: vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	img, err := w.cmds.CreateImage(w.device, info)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.DepthImage = img

	mem, err := memutil.AllocateForImage(w.cmds, w.device, w.props, img, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return fmt.Errorf("window: depth image allocation: %w", err)
	}
	w.depthMem = mem

	aspect := vk.ImageAspectDepthBit
	if hasStencil(w.Config.DepthStencil) {
		aspect |= vk.ImageAspectStencilBit
	}

	view, err := w.cmds.CreateImageView(w.device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    img,
		ViewType: vk.ImageViewType2D,
		Format:   w.Config.DepthStencil.VkFormat,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: 1,
			LayerCount: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.DepthView = view
	return nil
}

func hasStencil(f *format.Format) bool {
	return strings.Contains(f.Name, "S8_UINT")
}

func (w *Window) createReadbackBuffer() error {
	stride := w.Config.ColorFormat.GetSize() * w.Config.Width
	w.Stride = stride
	size := vk.DeviceSize(stride * w.Config.Height)

	buf, err := w.cmds.CreateBuffer(w.device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageTransferDstBit,
		SharingMode: vk.SharingModeExclusive,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.Readback = buf

	mem, err := memutil.AllocateForBuffer(w.cmds, w.device, w.props, buf, vk.MemoryPropertyHostVisibleBit, true)
	if err != nil {
		return fmt.Errorf("window: readback buffer allocation: %w", err)
	}
	w.readbackMem = mem
	w.IsCoherent = memutil.IsCoherent(w.props, mem.TypeIndex)
	return nil
}

// ReadbackBytes returns the mapped readback buffer's contents.
func (w *Window) ReadbackBytes() []byte {
	return w.readbackMem.Bytes()
}

// InvalidateReadback issues a coherence invalidate over the whole
// readback buffer if the memory backing it is not HOST_COHERENT. Call
// once before a CPU read that follows a GPU write.
func (w *Window) InvalidateReadback() error {
	return memutil.Invalidate(w.cmds, w.device, w.props, w.readbackMem.TypeIndex, w.readbackMem.Memory, 0, w.readbackMem.Size)
}

func (w *Window) createRenderPasses() error {
	clear, err := w.buildRenderPass(vk.AttachmentLoadOpDontCare, vk.ImageLayoutUndefined)
	if err != nil {
		return err
	}
	w.RenderPassClear = clear

	load, err := w.buildRenderPass(vk.AttachmentLoadOpLoad, vk.ImageLayoutTransferSrcOptimal)
	if err != nil {
		return err
	}
	w.RenderPassLoad = load
	return nil
}

// buildRenderPass creates a single-subpass render pass whose colour
// attachment uses loadOp/initialLayout and always finishes in
// TRANSFER_SRC_OPTIMAL, ready for the post-render-pass copy-to-buffer.
func (w *Window) buildRenderPass(loadOp vk.AttachmentLoadOp, initialLayout vk.ImageLayout) (vk.RenderPass, error) {
	attachments := []vk.AttachmentDescription{{
		Format:         w.Config.ColorFormat.VkFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         loadOp,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  initialLayout,
		FinalLayout:    vk.ImageLayoutTransferSrcOptimal,
	}}
	colorRef := vk.AttachmentReference{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}

	var depthRef *vk.AttachmentReference
	if w.Config.DepthStencil != nil {
		depthInitial := vk.ImageLayoutUndefined
		if loadOp == vk.AttachmentLoadOpLoad {
			depthInitial = vk.ImageLayoutDepthStencilAttachmentOptimal
		}
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         w.Config.DepthStencil.VkFormat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         loadOp,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  loadOp,
			StencilStoreOp: vk.AttachmentStoreOpStore,
			InitialLayout:  depthInitial,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		depthRef = &vk.AttachmentReference{Attachment: 1, Layout: vk.ImageLayoutDepthStencilAttachmentOptimal}
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    uintptr(unsafe.Pointer(&colorRef)),
	}
	if depthRef != nil {
		subpass.PDepthStencilAttachment = uintptr(unsafe.Pointer(depthRef))
	}

	info := &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    uintptr(unsafe.Pointer(&attachments[0])),
		SubpassCount:    1,
		PSubpasses:      uintptr(unsafe.Pointer(&subpass)),
	}

	rp, err := w.cmds.CreateRenderPass(w.device, info)
	if err != nil {
		return 0, fmt.Errorf("window: %w", err)
	}
	return rp, nil
}

func (w *Window) createFramebuffer() error {
	views := []vk.ImageView{w.ColorView}
	if w.DepthView != 0 {
		views = append(views, w.DepthView)
	}

	fb, err := w.cmds.CreateFramebuffer(w.device, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      w.RenderPassClear,
		AttachmentCount: uint32(len(views)),
		PAttachments:    uintptr(unsafe.Pointer(&views[0])),
		Width:           uint32(w.Config.Width),
		Height:          uint32(w.Config.Height),
		Layers:          1,
	})
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	w.Framebuffer = fb
	return nil
}

// Close destroys every resource the window owns. Safe to call on a
// partially constructed Window (e.g. from a failed New).
func (w *Window) Close() {
	if w.Framebuffer != 0 {
		w.cmds.DestroyFramebuffer(w.device, w.Framebuffer)
	}
	if w.RenderPassLoad != 0 {
		w.cmds.DestroyRenderPass(w.device, w.RenderPassLoad)
	}
	if w.RenderPassClear != 0 {
		w.cmds.DestroyRenderPass(w.device, w.RenderPassClear)
	}
	if w.Readback != 0 {
		w.cmds.DestroyBuffer(w.device, w.Readback)
	}
	if w.readbackMem.Memory != 0 {
		w.readbackMem.Free(w.cmds, w.device)
	}
	if w.DepthView != 0 {
		w.cmds.DestroyImageView(w.device, w.DepthView)
	}
	if w.DepthImage != 0 {
		w.cmds.DestroyImage(w.device, w.DepthImage)
	}
	if w.depthMem.Memory != 0 {
		w.depthMem.Free(w.cmds, w.device)
	}
	if w.ColorView != 0 {
		w.cmds.DestroyImageView(w.device, w.ColorView)
	}
	if w.ColorImage != 0 {
		w.cmds.DestroyImage(w.device, w.ColorImage)
	}
	if w.colorMem.Memory != 0 {
		w.colorMem.Free(w.cmds, w.device)
	}
}
