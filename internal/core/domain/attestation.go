package domain

import "time"

// AttestationVersion tags every attestation written by this module.
const AttestationVersion = "SECURE-1.1"

// VMCheck names one of the independent virtualization checks.
type VMCheck string

const (
	VMCheckSystemModel   VMCheck = "system_model"
	VMCheckMACPrefix     VMCheck = "mac_prefix"
	VMCheckCPUHypervisor VMCheck = "cpu_hypervisor"
	VMCheckFirmware      VMCheck = "firmware_vendor"
	VMCheckPlatformQuery VMCheck = "platform_query"
	VMCheckGuestTools    VMCheck = "guest_tools"
)

// AllVMChecks lists the battery in the order it is executed.
var AllVMChecks = []VMCheck{
	VMCheckSystemModel,
	VMCheckMACPrefix,
	VMCheckCPUHypervisor,
	VMCheckFirmware,
	VMCheckPlatformQuery,
	VMCheckGuestTools,
}

// VMIndicator records a single matched check.
type VMIndicator struct {
	Check  VMCheck `json:"check"`
	Detail string  `json:"detail"`
}

// VMDetection is the heuristic outcome of the VM check battery.
type VMDetection struct {
	IsVM       bool          `json:"isVM"`
	Confidence int           `json:"confidence"`
	Hypervisor string        `json:"hypervisor,omitempty"`
	VMUUID     string        `json:"vmUuid,omitempty"`
	Indicators []VMIndicator `json:"indicators"`
	Warnings   []string      `json:"warnings,omitempty"`
}

// HostInfo is the raw machine description gathered by a SystemProbe.
type HostInfo struct {
	CPUModel    string `json:"cpuModel"`
	CPUCount    int    `json:"cpuCount"`
	TotalMemory uint64 `json:"totalMemory"`
	Arch        string `json:"arch"`
	Platform    string `json:"platform"`
	OSType      string `json:"osType"`
	OSRelease   string `json:"osRelease"`
	Hostname    string `json:"hostname"`
	Username    string `json:"username"`
	// Hypervisor is the CPUID hypervisor-present bit, or the cpuinfo flag.
	Hypervisor bool `json:"hypervisor"`
}

// HardwareAttestation binds a key to the machine it was created on.
// It is written once per identity and only read back for comparison.
type HardwareAttestation struct {
	Version       string       `json:"version"`
	CreatedAt     time.Time    `json:"createdAt"`
	HardwareUUID  string       `json:"hardwareUuid"`
	CPUModel      string       `json:"cpuModel,omitempty"`
	CPUCount      int          `json:"cpuCount"`
	TotalMemory   uint64       `json:"totalMemory,omitempty"`
	Arch          string       `json:"arch,omitempty"`
	Platform      string       `json:"platform"`
	OSType        string       `json:"osType"`
	OSRelease     string       `json:"osRelease"`
	Hostname      string       `json:"hostname"`
	Username      string       `json:"username"`
	VM            *VMDetection `json:"vm,omitempty"`
	VMEntropyHash string       `json:"vmEntropyHash,omitempty"`
	VMFirstSeen   *time.Time   `json:"vmFirstSeen,omitempty"`
}

// FingerprintWeights weights the fields compared by VerifyFingerprint.
type FingerprintWeights struct {
	UUID            float64 `mapstructure:"uuid"`
	CPU             float64 `mapstructure:"cpu"`
	Memory          float64 `mapstructure:"memory"`
	Arch            float64 `mapstructure:"arch"`
	MemoryTolerance float64 `mapstructure:"memory_tolerance"`
}

// DefaultFingerprintWeights returns the 40/30/20/10 split with a 10% memory tolerance.
func DefaultFingerprintWeights() FingerprintWeights {
	return FingerprintWeights{UUID: 4, CPU: 3, Memory: 2, Arch: 1, MemoryTolerance: 0.10}
}

// VMDetectionPolicy controls how indicator matches become a verdict.
type VMDetectionPolicy struct {
	Weights             map[VMCheck]float64
	MinIndicators       int
	ConfidenceThreshold int
}

// DefaultVMDetectionPolicy weighs every check equally.
func DefaultVMDetectionPolicy() VMDetectionPolicy {
	w := make(map[VMCheck]float64, len(AllVMChecks))
	for _, c := range AllVMChecks {
		w[c] = 1
	}
	return VMDetectionPolicy{Weights: w, MinIndicators: 2, ConfidenceThreshold: 50}
}

// Weight returns the weight for a check, defaulting to 1 when unset.
func (p VMDetectionPolicy) Weight(c VMCheck) float64 {
	if w, ok := p.Weights[c]; ok {
		return w
	}
	return 1
}
