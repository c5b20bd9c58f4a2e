// Package gpu enumerates NVIDIA devices through NVML. NVML return codes are
// reported as *syserr.Error values in the NVML domain.
package gpu

import (
	"go.uber.org/multierr"

	"codeberg.org/mutker/oserr/internal/logger"
)

// Device describes one GPU.
type Device struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// List initializes NVML, reads every device name and shuts NVML down again.
func List() ([]Device, error) {
	return list(nvmlLibrary{})
}

func list(lib library) (devices []Device, err error) {
	w := &nvmlWrapper{lib: lib}
	if err := w.Initialize(); err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, w.Shutdown())
	}()

	count, err := w.GetDeviceCount()
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", count).Msg("Detected GPUs")

	devices = make([]Device, 0, count)
	for i := 0; i < count; i++ {
		device, err := w.GetDevice(i)
		if err != nil {
			return nil, err
		}

		name, err := w.GetName(device)
		if err != nil {
			return nil, err
		}
		logger.Debug().Int("index", i).Str("name", name).Msg("Detected GPU")

		devices = append(devices, Device{Index: i, Name: name})
	}

	return devices, nil
}
