package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/25smoking/aggsynth/internal/core"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Manifest is the JSON sidecar written next to a generated dataset.
type Manifest struct {
	Dataset     string        `json:"dataset"`
	Rows        int           `json:"rows"`
	Header      []string      `json:"header"`
	Graph       string        `json:"graph"`
	Seed        int64         `json:"seed"`
	Normalizer  string        `json:"normalizer"`
	Eps         float64       `json:"eps"`
	MaxAttempts int           `json:"max_attempts"`
	Counters    core.Counters `json:"counters"`
	Duration    string        `json:"duration"`
	CreatedAt   string        `json:"created_at"`
	Host        HostInfo      `json:"host"`
}

type HostInfo struct {
	Hostname        string `json:"hostname"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version,omitempty"`
	KernelVersion   string `json:"kernel_version,omitempty"`
	Arch            string `json:"arch"`
	CPUs            int    `json:"cpus"`
	MemoryTotal     uint64 `json:"memory_total,omitempty"`
}

// CollectHost gathers host details. Lookups that fail are left empty.
func CollectHost() HostInfo {
	info := HostInfo{
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUs:     runtime.NumCPU(),
	}
	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
		info.PlatformVersion = h.PlatformVersion
		info.KernelVersion = h.KernelVersion
	} else if name, err := os.Hostname(); err == nil {
		info.Hostname = name
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryTotal = vm.Total
	}
	return info
}

// ManifestPath is the sidecar location for a dataset file.
func ManifestPath(dataset string) string {
	return dataset + ".manifest.json"
}

// NewManifest fills the fields derivable from a finished run.
func NewManifest(res Result, noAttributes int, counters core.Counters) Manifest {
	return Manifest{
		Dataset:   res.Path,
		Rows:      res.Rows,
		Header:    Header(noAttributes),
		Counters:  counters,
		Duration:  res.Duration.String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Host:      CollectHost(),
	}
}

func SaveManifest(m Manifest) error {
	path := ManifestPath(m.Dataset)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return f.Close()
}

func LoadManifest(dataset string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(dataset))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
