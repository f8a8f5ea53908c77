// Package system reads hardware and platform facts from the running host.
package system

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"rangerblock/internal/core/domain"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"github.com/prometheus/procfs"
	"github.com/wlynxg/anet"
)

// DefaultCommandTimeout bounds every external command the probe runs.
const DefaultCommandTimeout = 3 * time.Second

// Probe implements ports.SystemProbe against a filesystem root.
// Root is "/" in production; tests point it at a fixture tree.
type Probe struct {
	root           string
	commandTimeout time.Duration
	interfaces     func() ([]net.Interface, error)
	hypervisor     func() bool

	hostOnce sync.Once
	host     domain.HostInfo
}

// NewProbe creates a probe reading under root.
func NewProbe(root string) *Probe {
	if root == "" {
		root = "/"
	}
	return &Probe{
		root:           root,
		commandTimeout: DefaultCommandTimeout,
		interfaces:     anet.Interfaces,
		hypervisor:     cpuid.CPU.VM,
	}
}

func (p *Probe) path(name string) string {
	return filepath.Join(p.root, filepath.FromSlash(name))
}

// ReadFile reads an absolute platform path such as /sys/class/dmi/id/product_uuid.
func (p *Probe) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(p.path(path))
}

// NetworkMACs returns the sorted hardware addresses of non-loopback interfaces.
func (p *Probe) NetworkMACs() ([]string, error) {
	ifaces, err := p.interfaces()
	if err != nil {
		return nil, fmt.Errorf("listing interfaces: %w", err)
	}

	var macs []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
			continue
		}
		if bytes.Equal(iface.HardwareAddr, make([]byte, len(iface.HardwareAddr))) {
			continue
		}
		macs = append(macs, iface.HardwareAddr.String())
	}
	sort.Strings(macs)
	return macs, nil
}

// RunCommand runs name with args and returns its standard output.
func (p *Probe) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return string(out), fmt.Errorf("running %s: %w", name, err)
	}
	return string(out), nil
}

// ProcessNames lists the command names of running processes.
func (p *Probe) ProcessNames() ([]string, error) {
	fs, err := procfs.NewFS(p.path("/proc"))
	if err != nil {
		return nil, fmt.Errorf("opening procfs: %w", err)
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	names := make([]string, 0, len(procs))
	for _, proc := range procs {
		comm, err := proc.Comm()
		if err != nil {
			// exited while we were listing
			continue
		}
		names = append(names, comm)
	}
	return names, nil
}

// HostInfo describes the machine. It is read once and cached.
func (p *Probe) HostInfo() domain.HostInfo {
	p.hostOnce.Do(func() {
		p.host = p.readHostInfo()
	})
	return p.host
}

func (p *Probe) readHostInfo() domain.HostInfo {
	h := domain.HostInfo{
		CPUModel:    strings.TrimSpace(cpuid.CPU.BrandName),
		CPUCount:    runtime.NumCPU(),
		TotalMemory: memory.TotalMemory(),
		Arch:        runtime.GOARCH,
		Platform:    runtime.GOOS,
		OSType:      runtime.GOOS,
		OSRelease:   kernelRelease(),
		Hypervisor:  p.hypervisor(),
	}

	if fs, err := procfs.NewFS(p.path("/proc")); err == nil {
		if cpus, err := fs.CPUInfo(); err == nil && len(cpus) > 0 {
			if cpus[0].ModelName != "" {
				h.CPUModel = cpus[0].ModelName
			}
			h.CPUCount = len(cpus)
			h.Hypervisor = h.Hypervisor || slices.Contains(cpus[0].Flags, "hypervisor")
		}
		if mem, err := fs.Meminfo(); err == nil && mem.MemTotal != nil {
			h.TotalMemory = *mem.MemTotal * 1024
		}
	}
	if b, err := p.ReadFile("/proc/sys/kernel/ostype"); err == nil {
		h.OSType = strings.TrimSpace(string(b))
	}
	if b, err := p.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		h.OSRelease = strings.TrimSpace(string(b))
	}

	h.Hostname, _ = os.Hostname()
	if u, err := user.Current(); err == nil {
		h.Username = u.Username
	}
	return h
}
