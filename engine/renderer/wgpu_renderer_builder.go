package renderer

import "github.com/cogentcore/webgpu/wgpu"

// WGPUAdapterOption is a functional option for configuring a WebGPU render
// adapter during construction.
type WGPUAdapterOption func(*wgpuRenderAdapter)

// WithVSync selects the surface present mode: vsync waits for vertical blank,
// otherwise frames present immediately.
//
// Parameters:
//   - vsync: true for vsync presentation
//
// Returns:
//   - WGPUAdapterOption: functional option to set the present mode
func WithVSync(vsync bool) WGPUAdapterOption {
	return func(r *wgpuRenderAdapter) {
		if vsync {
			r.presentMode = wgpu.PresentModeFifo
		} else {
			r.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithClearColor sets the background clear color.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - WGPUAdapterOption: functional option to set the clear color
func WithClearColor(red, green, blue, alpha float64) WGPUAdapterOption {
	return func(r *wgpuRenderAdapter) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithStagingWorkers sets the number of CPU workers used to stage instance
// data from the simulation memory. Panics if workers is not positive.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - WGPUAdapterOption: functional option to set the worker count
func WithStagingWorkers(workers int) WGPUAdapterOption {
	if workers <= 0 {
		panic("renderer: staging workers must be positive")
	}
	return func(r *wgpuRenderAdapter) {
		r.stagingWorkers = workers
	}
}
