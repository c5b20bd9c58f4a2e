// Package netdb wraps host name lookups. Resolution failures use the
// resolver code space (EAI_*), not errno.
package netdb

import (
	"context"
	"errors"
	"net"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

// Resolver is the part of *net.Resolver that Getaddrinfo needs.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Getaddrinfo resolves host with r, or net.DefaultResolver when r is nil.
func Getaddrinfo(ctx context.Context, r Resolver, host string) ([]string, error) {
	if host == "" {
		return nil, syserr.FromResolver(syserr.Getaddrinfo, syserr.EAINoName)
	}
	if r == nil {
		r = net.DefaultResolver
	}

	addrs, err := r.LookupHost(ctx, host)
	if err != nil {
		return nil, syserr.FromResolver(syserr.Getaddrinfo, classify(err))
	}
	if len(addrs) == 0 {
		return nil, syserr.FromResolver(syserr.Getaddrinfo, syserr.EAINoData)
	}

	return addrs, nil
}

// classify maps a Go resolver error onto the EAI status getaddrinfo would
// have returned.
func classify(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return syserr.EAIAgain
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return syserr.EAINoName
		case dnsErr.IsTimeout, dnsErr.IsTemporary:
			return syserr.EAIAgain
		}
		return syserr.EAIFail
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		return syserr.EAISystem
	}

	return syserr.EAIFail
}

// Gethostname copies the host name into buf and returns its length. Like
// gethostname it fails with ENAMETOOLONG when buf cannot hold the name and
// its terminator.
func Gethostname(buf []byte) (int, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return -1, syserr.FromErrno(syserr.Gethostname, err)
	}

	name := unix.ByteSliceToString(uts.Nodename[:])
	if len(name)+1 > len(buf) {
		return -1, syserr.New(syserr.Gethostname, int(unix.ENAMETOOLONG))
	}

	n := copy(buf, name)
	buf[n] = 0

	return n, nil
}
