package gpu

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	"codeberg.org/mutker/oserr/internal/syserr"
)

// library abstracts the NVML entry points for testing.
type library interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	DeviceGetCount() (int, nvml.Return)
	DeviceGetHandleByIndex(index int) (nvml.Device, nvml.Return)
}

type nvmlLibrary struct{}

func (nvmlLibrary) Init() nvml.Return     { return nvml.Init() }
func (nvmlLibrary) Shutdown() nvml.Return { return nvml.Shutdown() }

func (nvmlLibrary) DeviceGetCount() (int, nvml.Return) {
	return nvml.DeviceGetCount()
}

func (nvmlLibrary) DeviceGetHandleByIndex(index int) (nvml.Device, nvml.Return) {
	return nvml.DeviceGetHandleByIndex(index)
}

// nvmlWrapper translates every non-SUCCESS return into a *syserr.Error in
// the NVML domain.
type nvmlWrapper struct {
	lib         library
	initialized bool
}

func (w *nvmlWrapper) Initialize() error {
	if w.initialized {
		return nil
	}

	if err := syserr.FromNVML(syserr.NvmlInit, w.lib.Init()); err != nil {
		return err
	}
	w.initialized = true

	return nil
}

func (w *nvmlWrapper) Shutdown() error {
	if !w.initialized {
		return nil
	}

	if err := syserr.FromNVML(syserr.NvmlShutdown, w.lib.Shutdown()); err != nil {
		return err
	}
	w.initialized = false

	return nil
}

func (w *nvmlWrapper) GetDeviceCount() (int, error) {
	if !w.initialized {
		return 0, syserr.FromNVML(syserr.NvmlDeviceGetCount, nvml.ERROR_UNINITIALIZED)
	}

	count, ret := w.lib.DeviceGetCount()
	if err := syserr.FromNVML(syserr.NvmlDeviceGetCount, ret); err != nil {
		return 0, err
	}

	return count, nil
}

func (w *nvmlWrapper) GetDevice(index int) (nvml.Device, error) {
	if !w.initialized {
		return nil, syserr.FromNVML(syserr.NvmlDeviceGetHandleByIndex, nvml.ERROR_UNINITIALIZED)
	}

	device, ret := w.lib.DeviceGetHandleByIndex(index)
	if err := syserr.FromNVML(syserr.NvmlDeviceGetHandleByIndex, ret); err != nil {
		return nil, err
	}

	return device, nil
}

func (w *nvmlWrapper) GetName(device nvml.Device) (string, error) {
	name, ret := device.GetName()
	if err := syserr.FromNVML(syserr.NvmlDeviceGetName, ret); err != nil {
		return "", err
	}

	return name, nil
}
