package backend

import (
	"fmt"
	"strings"
)

// Version is a packed major.minor.patch version in the Vulkan layout.
type Version uint32

// MakeVersion packs a version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(major<<22 | minor<<12 | patch)
}

// Major returns the major component.
func (v Version) Major() uint32 { return uint32(v) >> 22 }

// Minor returns the minor component.
func (v Version) Minor() uint32 { return (uint32(v) >> 12) & 0x3FF }

// Patch returns the patch component.
func (v Version) Patch() uint32 { return uint32(v) & 0xFFF }

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// DeviceType classifies a physical device.
type DeviceType uint8

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

// String returns the device type name.
func (t DeviceType) String() string {
	switch t {
	case DeviceTypeOther:
		return "Other"
	case DeviceTypeIntegratedGPU:
		return "IntegratedGPU"
	case DeviceTypeDiscreteGPU:
		return "DiscreteGPU"
	case DeviceTypeVirtualGPU:
		return "VirtualGPU"
	case DeviceTypeCPU:
		return "CPU"
	default:
		return fmt.Sprintf("DeviceType(%d)", t)
	}
}

// Severity is a set of diagnostics message severities.
// The bit values match VkDebugUtilsMessageSeverityFlagBitsEXT, so a
// single-bit Severity orders by importance.
type Severity uint32

const (
	SeverityVerbose Severity = 0x0001
	SeverityInfo    Severity = 0x0010
	SeverityWarning Severity = 0x0100
	SeverityError   Severity = 0x1000

	SeverityAll = SeverityVerbose | SeverityInfo | SeverityWarning | SeverityError
)

// AtLeast reports whether the most severe bit of s is at or above min.
func (s Severity) AtLeast(min Severity) bool {
	return s.highest() >= min.highest()
}

func (s Severity) highest() Severity {
	for _, bit := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityVerbose} {
		if s&bit != 0 {
			return bit
		}
	}
	return 0
}

// String returns the severity names joined with "|".
func (s Severity) String() string {
	return flagString(uint32(s), []flagName{
		{uint32(SeverityVerbose), "Verbose"},
		{uint32(SeverityInfo), "Info"},
		{uint32(SeverityWarning), "Warning"},
		{uint32(SeverityError), "Error"},
	})
}

// MessageType is a set of diagnostics message categories.
// The bit values match VkDebugUtilsMessageTypeFlagBitsEXT.
type MessageType uint32

const (
	MessageGeneral     MessageType = 0x1
	MessageValidation  MessageType = 0x2
	MessagePerformance MessageType = 0x4

	MessageAll = MessageGeneral | MessageValidation | MessagePerformance
)

// String returns the type names joined with "|".
func (t MessageType) String() string {
	return flagString(uint32(t), []flagName{
		{uint32(MessageGeneral), "General"},
		{uint32(MessageValidation), "Validation"},
		{uint32(MessagePerformance), "Performance"},
	})
}

type flagName struct {
	bit  uint32
	name string
}

func flagString(v uint32, names []flagName) string {
	if v == 0 {
		return "None"
	}
	var parts []string
	for _, f := range names {
		if v&f.bit != 0 {
			parts = append(parts, f.name)
			v &^= f.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", v))
	}
	return strings.Join(parts, "|")
}

// Message is one diagnostics report from a backend.
type Message struct {
	Severity Severity
	Type     MessageType
	ID       string
	Number   int32
	Text     string
}

// Callback receives diagnostics messages. It runs synchronously on the
// thread of the backend call that produced the message. Returning true
// asks the backend to abort that call.
type Callback func(Message) bool

// MessengerInfo describes a diagnostics subscription.
type MessengerInfo struct {
	Severities Severity
	Types      MessageType
	Callback   Callback
}

// Wants reports whether a message with the given severity and type
// matches the subscription.
func (m *MessengerInfo) Wants(s Severity, t MessageType) bool {
	return m.Severities&s != 0 && m.Types&t != 0
}

// Deliver hands msg to the callback if the subscription matches.
// It returns the callback's abort request, or false when not delivered.
func (m *MessengerInfo) Deliver(msg Message) bool {
	if m == nil || m.Callback == nil || !m.Wants(msg.Severity, msg.Type) {
		return false
	}
	return m.Callback(msg)
}
