package system

import (
	"context"
	"errors"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestProbe_ReadFile(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"/sys/class/dmi/id/product_uuid": "4C4C4544-0051-3410-8051-B4C04F564433\n",
	})
	p := NewProbe(root)

	b, err := p.ReadFile("/sys/class/dmi/id/product_uuid")
	require.NoError(t, err)
	assert.Equal(t, "4C4C4544-0051-3410-8051-B4C04F564433\n", string(b))

	_, err = p.ReadFile("/etc/machine-id")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProbe_NetworkMACs(t *testing.T) {
	mac := func(s string) net.HardwareAddr {
		hw, err := net.ParseMAC(s)
		require.NoError(t, err)
		return hw
	}

	p := NewProbe(t.TempDir())
	p.interfaces = func() ([]net.Interface, error) {
		return []net.Interface{
			{Name: "lo", Flags: net.FlagLoopback | net.FlagUp},
			{Name: "wlan0", HardwareAddr: mac("f4:8e:38:11:22:33")},
			{Name: "eth0", HardwareAddr: mac("08:00:27:aa:bb:cc")},
			{Name: "dummy0", HardwareAddr: mac("00:00:00:00:00:00")},
			{Name: "tun0"},
		}, nil
	}

	macs, err := p.NetworkMACs()
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00:27:aa:bb:cc", "f4:8e:38:11:22:33"}, macs)

	p.interfaces = func() ([]net.Interface, error) { return nil, errors.New("netlink denied") }
	_, err = p.NetworkMACs()
	assert.ErrorContains(t, err, "netlink denied")
}

func TestProbe_ProcessNames(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"/proc/1/comm":   "systemd\n",
		"/proc/412/comm": "VBoxService\n",
		"/proc/uptime":   "1.00 1.00\n",
	})

	names, err := NewProbe(root).ProcessNames()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"systemd", "VBoxService"}, names)
}

func TestProbe_HostInfo(t *testing.T) {
	if runtime.GOARCH != "amd64" {
		t.Skip("cpuinfo fixture uses the x86 layout")
	}
	root := t.TempDir()
	writeFixture(t, root, map[string]string{
		"/proc/cpuinfo": "processor\t: 0\nvendor_id\t: GenuineIntel\nmodel name\t: Intel(R) Core(TM) i7-11700 CPU @ 2.50GHz\nflags\t\t: fpu vme\n\n" +
			"processor\t: 1\nvendor_id\t: GenuineIntel\nmodel name\t: Intel(R) Core(TM) i7-11700 CPU @ 2.50GHz\nflags\t\t: fpu vme\n\n",
		"/proc/meminfo":              "MemTotal:       32768 kB\nMemFree:        1024 kB\n",
		"/proc/sys/kernel/ostype":    "Linux\n",
		"/proc/sys/kernel/osrelease": "6.8.0-rangers\n",
	})

	p := NewProbe(root)
	h := p.HostInfo()

	assert.Equal(t, "Intel(R) Core(TM) i7-11700 CPU @ 2.50GHz", h.CPUModel)
	assert.Equal(t, 2, h.CPUCount)
	assert.Equal(t, uint64(32768*1024), h.TotalMemory)
	assert.Equal(t, "Linux", h.OSType)
	assert.Equal(t, "6.8.0-rangers", h.OSRelease)
	assert.Equal(t, runtime.GOARCH, h.Arch)
	assert.Equal(t, runtime.GOOS, h.Platform)

	require.NoError(t, os.WriteFile(filepath.Join(root, "proc", "sys", "kernel", "osrelease"), []byte("7.0\n"), 0o644))
	assert.Equal(t, "6.8.0-rangers", p.HostInfo().OSRelease)
}

func TestProbe_HostInfoFallsBackWithoutProc(t *testing.T) {
	h := NewProbe(t.TempDir()).HostInfo()
	assert.Equal(t, runtime.NumCPU(), h.CPUCount)
	assert.Equal(t, runtime.GOOS, h.OSType)
	assert.Equal(t, runtime.GOARCH, h.Arch)
}

func TestProbe_HostInfoHypervisor(t *testing.T) {
	t.Run("cpuid bit without procfs", func(t *testing.T) {
		p := NewProbe(t.TempDir())
		p.hypervisor = func() bool { return true }
		assert.True(t, p.HostInfo().Hypervisor)
	})

	t.Run("cpuinfo flag", func(t *testing.T) {
		if runtime.GOARCH != "amd64" {
			t.Skip("cpuinfo fixture uses the x86 layout")
		}
		root := t.TempDir()
		writeFixture(t, root, map[string]string{
			"/proc/cpuinfo": "processor\t: 0\nvendor_id\t: GenuineIntel\nmodel name\t: QEMU Virtual CPU\nflags\t\t: fpu vme hypervisor\n\n",
		})
		p := NewProbe(root)
		p.hypervisor = func() bool { return false }
		assert.True(t, p.HostInfo().Hypervisor)
	})

	t.Run("bare metal", func(t *testing.T) {
		p := NewProbe(t.TempDir())
		p.hypervisor = func() bool { return false }
		assert.False(t, p.HostInfo().Hypervisor)
	})
}

func TestProbe_RunCommand(t *testing.T) {
	ctx := context.Background()
	p := NewProbe("")

	_, err := p.RunCommand(ctx, "rangerblock-no-such-binary")
	assert.Error(t, err)

	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	out, err := p.RunCommand(ctx, "echo", "none")
	require.NoError(t, err)
	assert.Equal(t, "none\n", out)
}
