package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports"

	"github.com/rs/zerolog"
)

// Well-known locations read through the SystemProbe.
const (
	pathProductUUID   = "/sys/class/dmi/id/product_uuid"
	pathProductName   = "/sys/class/dmi/id/product_name"
	pathSysVendor     = "/sys/class/dmi/id/sys_vendor"
	pathBoardVendor   = "/sys/class/dmi/id/board_vendor"
	pathBIOSVendor    = "/sys/class/dmi/id/bios_vendor"
	pathMachineID     = "/etc/machine-id"
	pathDBusMachineID = "/var/lib/dbus/machine-id"
)

const entropyTagLen = 16

// ErrNoHardwareID means no platform identifier and no host facts were readable.
var ErrNoHardwareID = errors.New("no hardware identifier available")

var (
	vmHypervisors = []string{"vmware", "virtualbox", "vbox", "parallels", "qemu", "kvm", "xen", "hyper-v", "hyperv", "bhyve"}
	vmModels      = []string{"vmware", "virtualbox", "parallels", "qemu", "bochs", "kvm", "virtual"}
	vmGuestTools  = []string{"vmtoolsd", "vmware-user", "vboxservice", "vboxclient", "prl_tools", "qemu-ga", "spice-vdagent"}

	// vmMACPrefixes maps OUI prefixes to the hypervisor that assigns them.
	vmMACPrefixes = map[string]string{
		"00:05:69": "vmware",
		"00:0c:29": "vmware",
		"00:1c:14": "vmware",
		"00:50:56": "vmware",
		"08:00:27": "virtualbox",
		"0a:00:27": "virtualbox",
		"00:1c:42": "parallels",
		"52:54:00": "qemu",
		"00:16:3e": "xen",
		"00:15:5d": "hyper-v",
	}
)

type vmCheckResult struct {
	matched    bool
	detail     string
	hypervisor string
}

// HardwareService implements ports.HardwareService on top of a SystemProbe.
type HardwareService struct {
	probe   ports.SystemProbe
	policy  domain.VMDetectionPolicy
	weights domain.FingerprintWeights
	log     zerolog.Logger
	now     func() time.Time

	mu   sync.Mutex
	uuid string
	vm   *domain.VMDetection
}

// NewHardwareService creates a hardware service. Detection results are cached for the process lifetime.
func NewHardwareService(
	probe ports.SystemProbe,
	policy domain.VMDetectionPolicy,
	weights domain.FingerprintWeights,
	log zerolog.Logger,
) *HardwareService {
	return &HardwareService{
		probe:   probe,
		policy:  policy,
		weights: weights,
		log:     log,
		now:     time.Now,
	}
}

// HardwareUUID returns the DMI product UUID, then machine-id, then a hash of CPU, memory and arch.
func (s *HardwareService) HardwareUUID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uuid != "" {
		return s.uuid, nil
	}

	if id := s.readTrimmed(pathProductUUID); id != "" && !strings.EqualFold(id, "unknown") {
		s.uuid = id
		return id, nil
	}
	for _, p := range []string{pathMachineID, pathDBusMachineID} {
		if id := s.readTrimmed(p); id != "" {
			s.uuid = id
			return id, nil
		}
	}

	host := s.probe.HostInfo()
	if host.CPUModel == "" && host.TotalMemory == 0 {
		return "", ErrNoHardwareID
	}
	sum := sha256.Sum256([]byte(host.CPUModel + "|" + strconv.FormatUint(host.TotalMemory, 10) + "|" + host.Arch))
	s.uuid = hex.EncodeToString(sum[:])[:36]
	s.log.Warn().Str("hardware_uuid", s.uuid).Msg("no platform identifier, using derived fallback")
	return s.uuid, nil
}

// HostInfo returns the probe's machine description.
func (s *HardwareService) HostInfo(_ context.Context) domain.HostInfo {
	return s.probe.HostInfo()
}

// DetectVM runs the check battery once and caches the verdict.
func (s *HardwareService) DetectVM(ctx context.Context) *domain.VMDetection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vm != nil {
		return s.vm
	}

	checks := map[domain.VMCheck]func(context.Context) vmCheckResult{
		domain.VMCheckSystemModel:   s.checkSystemModel,
		domain.VMCheckMACPrefix:     s.checkMACAddresses,
		domain.VMCheckCPUHypervisor: s.checkCPU,
		domain.VMCheckFirmware:      s.checkFirmware,
		domain.VMCheckPlatformQuery: s.checkPlatform,
		domain.VMCheckGuestTools:    s.checkGuestTools,
	}

	det := &domain.VMDetection{Indicators: []domain.VMIndicator{}}
	var matched int
	var matchedWeight, totalWeight float64
	for _, c := range domain.AllVMChecks {
		w := s.policy.Weight(c)
		totalWeight += w
		res := checks[c](ctx)
		if !res.matched {
			continue
		}
		matched++
		matchedWeight += w
		det.Indicators = append(det.Indicators, domain.VMIndicator{Check: c, Detail: res.detail})
		if det.Hypervisor == "" && res.hypervisor != "" {
			det.Hypervisor = res.hypervisor
		}
	}

	if totalWeight > 0 {
		det.Confidence = int(math.Round(matchedWeight / totalWeight * 100))
	}
	det.IsVM = matched >= s.policy.MinIndicators || det.Confidence >= s.policy.ConfidenceThreshold

	if det.IsVM {
		det.VMUUID = s.vmUUID(det.Hypervisor)
		det.Warnings = []string{
			"Running in VM - identity can be cloned if VM is cloned",
			"Consider additional authentication for VM deployments",
		}
		s.log.Warn().
			Str("hypervisor", det.Hypervisor).
			Int("confidence", det.Confidence).
			Int("indicators", matched).
			Msg("virtual machine detected")
	}

	s.vm = det
	return det
}

// CreateAttestation describes the current machine. In a VM it also stamps a
// fresh entropy hash whose suffix is derived from entropySecret.
func (s *HardwareService) CreateAttestation(ctx context.Context, entropySecret []byte) (*domain.HardwareAttestation, error) {
	hwUUID, err := s.HardwareUUID(ctx)
	if err != nil {
		return nil, err
	}
	host := s.probe.HostInfo()
	vm := s.DetectVM(ctx)
	now := s.now().UTC()

	att := &domain.HardwareAttestation{
		Version:      domain.AttestationVersion,
		CreatedAt:    now,
		HardwareUUID: hwUUID,
		CPUModel:     host.CPUModel,
		CPUCount:     host.CPUCount,
		TotalMemory:  host.TotalMemory,
		Arch:         host.Arch,
		Platform:     host.Platform,
		OSType:       host.OSType,
		OSRelease:    host.OSRelease,
		Hostname:     host.Hostname,
		Username:     host.Username,
		VM:           vm,
	}

	if vm.IsVM {
		random := make([]byte, 16)
		if _, err := rand.Read(random); err != nil {
			return nil, fmt.Errorf("generating vm entropy: %w", err)
		}
		sum := sha256.Sum256([]byte(vm.VMUUID + "|" + strconv.FormatInt(now.UnixMilli(), 10) + "|" + hex.EncodeToString(random)))
		att.VMEntropyHash = hex.EncodeToString(sum[:])[:64-entropyTagLen] + EntropyTag(entropySecret)
		att.VMFirstSeen = &now
	}

	return att, nil
}

// VerifyFingerprint scores the current machine against stored using the configured weights.
func (s *HardwareService) VerifyFingerprint(ctx context.Context, stored *domain.HardwareAttestation) (float64, error) {
	if stored == nil {
		return 0, nil
	}
	host := s.probe.HostInfo()
	w := s.weights

	var matches, total float64
	if stored.HardwareUUID != "" {
		current, err := s.HardwareUUID(ctx)
		if err != nil {
			return 0, err
		}
		total += w.UUID
		if stored.HardwareUUID == current {
			matches += w.UUID
		}
	}
	if stored.CPUModel != "" && host.CPUModel != "" {
		total += w.CPU
		if stored.CPUModel == host.CPUModel {
			matches += w.CPU
		}
	}
	if stored.TotalMemory > 0 {
		total += w.Memory
		diff := math.Abs(float64(stored.TotalMemory) - float64(host.TotalMemory))
		if diff/float64(stored.TotalMemory) < w.MemoryTolerance {
			matches += w.Memory
		}
	}
	if stored.Arch != "" {
		total += w.Arch
		if stored.Arch == host.Arch {
			matches += w.Arch
		}
	}

	if total == 0 {
		return 0, nil
	}
	return matches / total, nil
}

// EntropyTag is the part of a VM entropy hash that ties it to one entropy secret.
func EntropyTag(entropySecret []byte) string {
	if len(entropySecret) == 0 {
		return strings.Repeat("0", entropyTagLen)
	}
	sum := sha256.Sum256(entropySecret)
	return hex.EncodeToString(sum[:])[:entropyTagLen]
}

func (s *HardwareService) readTrimmed(path string) string {
	b, err := s.probe.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (s *HardwareService) checkSystemModel(_ context.Context) vmCheckResult {
	model := strings.ToLower(s.readTrimmed(pathProductName))
	if model == "" {
		return vmCheckResult{}
	}
	for _, m := range vmModels {
		if strings.Contains(model, m) {
			return vmCheckResult{matched: true, detail: "System model: " + model, hypervisor: m}
		}
	}
	return vmCheckResult{}
}

func (s *HardwareService) checkMACAddresses(_ context.Context) vmCheckResult {
	macs, err := s.probe.NetworkMACs()
	if err != nil {
		return vmCheckResult{}
	}
	for _, mac := range macs {
		mac = strings.ToLower(mac)
		if len(mac) < 8 || mac == "00:00:00:00:00:00" {
			continue
		}
		if hv, ok := vmMACPrefixes[mac[:8]]; ok {
			return vmCheckResult{matched: true, detail: "VM MAC address: " + mac, hypervisor: hv}
		}
	}
	return vmCheckResult{}
}

func (s *HardwareService) checkCPU(_ context.Context) vmCheckResult {
	host := s.probe.HostInfo()
	if host.Hypervisor {
		return vmCheckResult{matched: true, detail: "CPU: hypervisor flag set"}
	}
	model := host.CPUModel
	lower := strings.ToLower(model)
	if strings.Contains(lower, "qemu") || strings.Contains(lower, "virtual") {
		return vmCheckResult{matched: true, detail: "CPU model: " + model}
	}
	return vmCheckResult{}
}

func (s *HardwareService) checkFirmware(_ context.Context) vmCheckResult {
	for _, p := range []string{pathSysVendor, pathBoardVendor, pathBIOSVendor} {
		vendor := strings.ToLower(s.readTrimmed(p))
		if vendor == "" {
			continue
		}
		for _, hv := range vmHypervisors {
			if strings.Contains(vendor, hv) {
				return vmCheckResult{matched: true, detail: "DMI: " + vendor, hypervisor: hv}
			}
		}
	}
	return vmCheckResult{}
}

func (s *HardwareService) checkPlatform(ctx context.Context) vmCheckResult {
	out, err := s.probe.RunCommand(ctx, "systemd-detect-virt")
	virt := strings.TrimSpace(out)
	if err != nil || virt == "" || virt == "none" {
		return vmCheckResult{}
	}
	return vmCheckResult{matched: true, detail: "systemd-detect-virt: " + virt, hypervisor: virt}
}

func (s *HardwareService) checkGuestTools(_ context.Context) vmCheckResult {
	procs, err := s.probe.ProcessNames()
	if err != nil {
		return vmCheckResult{}
	}
	var found []string
	for _, p := range procs {
		lower := strings.ToLower(p)
		for _, tool := range vmGuestTools {
			if strings.Contains(lower, tool) && !slices.Contains(found, tool) {
				found = append(found, tool)
			}
		}
	}
	if len(found) == 0 {
		return vmCheckResult{}
	}
	return vmCheckResult{matched: true, detail: "VM processes: " + strings.Join(found, ", ")}
}

func (s *HardwareService) vmUUID(hypervisor string) string {
	if hypervisor == "" {
		hypervisor = "unknown"
	}
	if id := s.readTrimmed(pathProductUUID); id != "" {
		return "vm:" + hypervisor + ":" + id
	}
	sum := sha256.Sum256([]byte("vm-" + hypervisor + "-" + s.probe.HostInfo().Hostname))
	return "vm:" + hypervisor + ":" + hex.EncodeToString(sum[:])[:36]
}
