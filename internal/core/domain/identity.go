package domain

import (
	"strconv"
	"strings"
	"time"
)

// AuthSecurityLevel is advertised in every auth payload.
const AuthSecurityLevel = "hardware_bound"

// StoreState is the lifecycle state of the secure identity store.
type StoreState string

const (
	StoreUninitialized StoreState = "UNINITIALIZED"
	StoreInitializing  StoreState = "INITIALIZING"
	StoreReady         StoreState = "READY"
	StoreDegraded      StoreState = "DEGRADED"
)

// IdentityStats holds lifecycle counters.
type IdentityStats struct {
	SessionsCount int `json:"sessionsCount"`
	MessagesSent  int `json:"messagesSent"`
}

// SecurityPosture summarizes how an identity is protected.
type SecurityPosture struct {
	HardwareAttested bool   `json:"hardwareAttested"`
	KeyBound         bool   `json:"keyBound"`
	EncryptedStorage bool   `json:"encryptedStorage"`
	IsVM             bool   `json:"isVM"`
	VMHypervisor     string `json:"vmHypervisor,omitempty"`
	VMProtected      bool   `json:"vmProtected"`
}

// Identity is the durable, hardware-bound participant record.
type Identity struct {
	UserID               string          `json:"userId"`
	NodeID               string          `json:"nodeId"`
	SecureFingerprint    string          `json:"secureFingerprint"`
	Username             string          `json:"username"`
	DisplayName          string          `json:"displayName"`
	AppType              string          `json:"appType"`
	PublicKey            string          `json:"publicKey"`
	AttestationSignature string          `json:"attestationSignature"`
	Created              time.Time       `json:"created"`
	LastSeen             time.Time       `json:"lastSeen"`
	Stats                IdentityStats   `json:"stats"`
	Security             SecurityPosture `json:"security"`
}

// Touch records a new session.
func (i *Identity) Touch(now time.Time) {
	i.LastSeen = now
	i.Stats.SessionsCount++
}

// KeyPair is an RSA key pair in PEM form.
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// EncryptedBlob is the JSON wrapper written for every encrypted file.
type EncryptedBlob struct {
	Encrypted string `json:"encrypted"`
	IV        string `json:"iv"`
	AuthTag   string `json:"authTag"`
}

// AuthPayload is what a node presents to prove who it is.
type AuthPayload struct {
	UserID        string `json:"userId"`
	NodeID        string `json:"nodeId"`
	Username      string `json:"username"`
	PublicKey     string `json:"publicKey"`
	HardwareHash  string `json:"hardwareHash"`
	SecurityLevel string `json:"securityLevel"`
	AppType       string `json:"appType"`
	Timestamp     int64  `json:"timestamp"`
}

// IntegrityReport is the outcome of a 100-point identity integrity check.
type IntegrityReport struct {
	Valid      bool     `json:"valid"`
	Score      int      `json:"score"`
	MatchScore float64  `json:"matchScore"`
	Issues     []string `json:"issues"`
	Checks     []string `json:"checks"`
}

// IdentitySummary is a public view of the identity.
type IdentitySummary struct {
	UserID       string          `json:"userId"`
	NodeID       string          `json:"nodeId"`
	Username     string          `json:"username"`
	HardwareHash string          `json:"hardwareHash"`
	Created      time.Time       `json:"created"`
	LastSeen     time.Time       `json:"lastSeen"`
	Stats        IdentityStats   `json:"stats"`
	Security     SecurityPosture `json:"security"`
}

// Summary returns the non-secret view of an identity.
func (i *Identity) Summary(hardwareHash string) IdentitySummary {
	return IdentitySummary{
		UserID:       i.UserID,
		NodeID:       i.NodeID,
		Username:     i.Username,
		HardwareHash: hardwareHash,
		Created:      i.Created,
		LastSeen:     i.LastSeen,
		Stats:        i.Stats,
		Security:     i.Security,
	}
}

// SanitizeUsername lowercases and strips everything outside [a-z0-9].
func SanitizeUsername(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	usernameAdjectives = []string{"Brave", "Swift", "Shadow", "Thunder", "Iron", "Cyber", "Ghost"}
	usernameNouns      = []string{"Ranger", "Guardian", "Sentinel", "Knight", "Warrior", "Shield"}
)

// GenerateUsername builds an adjective+noun+number name from three random draws.
func GenerateUsername(adj, noun, num int) string {
	a := usernameAdjectives[abs(adj)%len(usernameAdjectives)]
	n := usernameNouns[abs(noun)%len(usernameNouns)]
	return a + n + strconv.Itoa(abs(num)%100)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
