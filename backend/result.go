package backend

import "fmt"

// ResultCode is a native backend result code. The values match VkResult.
type ResultCode int32

const (
	ResultSuccess              ResultCode = 0
	ResultIncomplete           ResultCode = 5
	ResultOutOfHostMemory      ResultCode = -1
	ResultOutOfDeviceMemory    ResultCode = -2
	ResultInitializationFailed ResultCode = -3
	ResultLayerNotPresent      ResultCode = -6
	ResultExtensionNotPresent  ResultCode = -7
	ResultFeatureNotPresent    ResultCode = -8
	ResultIncompatibleDriver   ResultCode = -9
	ResultUnknown              ResultCode = -13
)

var resultNames = map[ResultCode]string{
	ResultSuccess:              "success",
	ResultIncomplete:           "incomplete",
	ResultOutOfHostMemory:      "out of host memory",
	ResultOutOfDeviceMemory:    "out of device memory",
	ResultInitializationFailed: "initialization failed",
	ResultLayerNotPresent:      "layer not present",
	ResultExtensionNotPresent:  "extension not present",
	ResultFeatureNotPresent:    "feature not present",
	ResultIncompatibleDriver:   "incompatible driver",
	ResultUnknown:              "unknown error",
}

// String returns a readable name for the code.
func (c ResultCode) String() string {
	if name, ok := resultNames[c]; ok {
		return name
	}
	return fmt.Sprintf("result %d", int32(c))
}

// Result is the error a backend returns for a failed native call.
type Result struct {
	Op   string // native call, e.g. "vkCreateInstance"
	Code ResultCode
	Err  error // optional underlying error
}

// Error implements the error interface.
func (r *Result) Error() string {
	msg := r.Op + ": " + r.Code.String()
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (r *Result) Unwrap() error { return r.Err }

// NewResult returns a Result error, or nil for ResultSuccess.
func NewResult(op string, code ResultCode) error {
	if code == ResultSuccess {
		return nil
	}
	return &Result{Op: op, Code: code}
}
