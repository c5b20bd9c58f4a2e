package syserr

// Domain tags the numeric space an error code belongs to. Codes from
// different domains overlap and must be rendered by their own resolver.
type Domain uint8

const (
	// DomainErrno is the generic OS errno space.
	DomainErrno Domain = iota
	// DomainResolver holds getaddrinfo style EAI status codes.
	DomainResolver
	// DomainNVML holds NVIDIA management library return codes.
	DomainNVML
)

func (d Domain) String() string {
	switch d {
	case DomainErrno:
		return "errno"
	case DomainResolver:
		return "resolver"
	case DomainNVML:
		return "nvml"
	default:
		return unknownOp
	}
}

// ParseDomain is the inverse of Domain.String.
func ParseDomain(s string) (Domain, bool) {
	switch s {
	case "errno", "":
		return DomainErrno, true
	case "resolver", "eai":
		return DomainResolver, true
	case "nvml":
		return DomainNVML, true
	default:
		return DomainErrno, false
	}
}
