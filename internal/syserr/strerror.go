package syserr

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"golang.org/x/sys/unix"
)

// Name resolution status codes, glibc numbering.
const (
	EAIBadFlags    = -1
	EAINoName      = -2
	EAIAgain       = -3
	EAIFail        = -4
	EAINoData      = -5
	EAIFamily      = -6
	EAISockType    = -7
	EAIService     = -8
	EAIAddrFamily  = -9
	EAIMemory      = -10
	EAISystem      = -11
	EAIOverflow    = -12
	eaiUnknownText = "Unknown error"
)

var eaiText = map[int]string{
	EAIBadFlags:   "Bad value for ai_flags",
	EAINoName:     "Name or service not known",
	EAIAgain:      "Temporary failure in name resolution",
	EAIFail:       "Non-recoverable failure in name resolution",
	EAINoData:     "No address associated with hostname",
	EAIFamily:     "ai_family not supported",
	EAISockType:   "ai_socktype not supported",
	EAIService:    "Servname not supported for ai_socktype",
	EAIAddrFamily: "Address family for hostname not supported",
	EAIMemory:     "Memory allocation failure",
	EAISystem:     "System error",
	EAIOverflow:   "Argument buffer overflow",
}

// Strerror describes code in the given domain. All lookups go through
// read-only tables, so it is safe for concurrent use, and it always
// returns some text.
func Strerror(domain Domain, code int) string {
	switch domain {
	case DomainResolver:
		if s, ok := eaiText[code]; ok {
			return s
		}
		return eaiUnknownText
	case DomainNVML:
		return nvml.ErrorString(nvml.Return(code))
	default:
		// unix.Errno falls back to "errno N" for values it has no text for.
		return unix.Errno(code).Error()
	}
}
