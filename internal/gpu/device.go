//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandel"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DeviceName is the registry name of the compute device.
const DeviceName = "gpu"

// fenceTimeout bounds the wait for one frame. Deep iteration counts on
// large frames can take several seconds on integrated adapters.
const fenceTimeout = 30 * time.Second

// errNotReady is returned by Render before a successful Init.
var errNotReady = errors.New("gpu: device not initialized")

// Device evaluates frames with a wgpu/hal compute pipeline, one shader
// invocation per pixel. It implements mandel.Device.
type Device struct {
	mu sync.Mutex

	provider any

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	adapterName    string
	ready          bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var _ mandel.Device = (*Device)(nil)

// NewDevice returns an uninitialized device. A non-nil provider must
// expose HalDevice() any and HalQueue() any; Init then shares its device
// instead of opening a new one.
func NewDevice(provider any) *Device {
	return &Device{provider: provider}
}

// Name returns "gpu".
func (d *Device) Name() string { return DeviceName }

// AdapterName returns the name of the adapter in use, if known.
func (d *Device) AdapterName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.adapterName
}

// HasProvider reports whether the device was given an external provider.
func (d *Device) HasProvider() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.provider != nil
}

// SetLogger receives the logger propagated by mandel.SetLogger.
func (d *Device) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// Init acquires an adapter and builds the compute pipeline. A missing
// adapter is reported as mandel.ErrCapabilityUnavailable and a shader that
// fails to compile as a *mandel.ShaderBuildError.
func (d *Device) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ready {
		return nil
	}

	var err error
	if d.provider != nil {
		err = d.attachLocked(d.provider)
	} else {
		err = d.initGPU()
	}
	if err != nil {
		var sbe *mandel.ShaderBuildError
		if errors.As(err, &sbe) {
			return err
		}
		return fmt.Errorf("%w: gpu: %w", mandel.ErrCapabilityUnavailable, err)
	}
	return nil
}

// Close releases the pipeline, and the device unless it is shared.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyPipelines()
	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.instance = nil
	d.queue = nil
	d.ready = false
	d.externalDevice = false
}

// SetDeviceProvider switches the device to a shared GPU device from an
// external provider (e.g., gogpu) and rebuilds the pipeline on it.
func (d *Device) SetDeviceProvider(provider any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.provider = provider
	return d.attachLocked(provider)
}

func (d *Device) attachLocked(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}

	// Destroy own resources if we created them.
	d.destroyPipelines()
	if !d.externalDevice && d.device != nil {
		d.device.Destroy()
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}

	d.device = device
	d.queue = queue
	d.externalDevice = true
	d.adapterName = "shared"

	if err := d.createPipelines(); err != nil {
		d.ready = false
		return err
	}
	d.ready = true
	slogger().Info("gpu: switched to shared GPU device")
	return nil
}

func (d *Device) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	d.adapterName = selected.Info.Name

	if err := d.createPipelines(); err != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
		return err
	}
	d.ready = true
	slogger().Info("gpu: compute device initialized", "adapter", selected.Info.Name)
	return nil
}

// createPipelines builds the escape pipeline on d.device. On failure the
// objects created so far are released before returning.
func (d *Device) createPipelines() (err error) {
	defer func() {
		if err != nil {
			d.destroyPipelines()
		}
	}()

	spirv, err := compileEscapeShader()
	if err != nil {
		return err
	}

	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "escape",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return &mandel.ShaderBuildError{Stage: "module", Log: err.Error()}
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "escape_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "escape_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "escape_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return &mandel.ShaderBuildError{Stage: "pipeline", Log: err.Error()}
	}
	d.pipeline = pipeline
	return nil
}

func (d *Device) destroyPipelines() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}

// Render dispatches one compute pass over dst and reads the pixels back.
func (d *Device) Render(p mandel.RenderParameters, dst *mandel.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready {
		return errNotReady
	}

	start := time.Now()
	w, h := uint32(dst.Width()), uint32(dst.Height()) //nolint:gosec // dimensions always fit uint32
	pixelBufSize := uint64(w) * uint64(h) * 4
	params := makeEscapeParams(p, dst.Width(), dst.Height())
	paramsBytes := params.bytes()

	uniformBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_params", Size: uint64(len(paramsBytes)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	defer d.device.DestroyBuffer(uniformBuf)

	storageBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_pixels", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create storage buffer: %w", err)
	}
	defer d.device.DestroyBuffer(storageBuf)

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(stagingBuf)

	d.queue.WriteBuffer(uniformBuf, 0, paramsBytes)

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "escape_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uint64(len(paramsBytes))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: storageBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	if err := d.submit(bindGroup, storageBuf, stagingBuf, w, h, pixelBufSize); err != nil {
		return err
	}

	readback := make([]byte, pixelBufSize)
	if err := d.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackPixelsFromGPU(readback, dst.Data(), int(w*h))

	slogger().Debug("gpu frame",
		"width", w, "height", h,
		"iterations", p.MaxIterations,
		"elapsed", time.Since(start))
	return nil
}

func (d *Device) submit(bindGroup hal.BindGroup, storageBuf, stagingBuf hal.Buffer, w, h uint32, size uint64) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "escape_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("escape"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "escape_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((w+7)/8, (h+7)/8, 1)
	pass.End()

	encoder.CopyBufferToBuffer(storageBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: size},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}
