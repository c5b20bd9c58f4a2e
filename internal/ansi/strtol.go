package ansi

import (
	"math"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const noDigits = "no digits found"

// Strtol parses a long the way strtol(3) does: leading white space, an
// optional sign, an optional 0x/0 prefix when base is 0 or 16, then as many
// digits as match. It returns the value and the index of the first byte not
// consumed.
//
// Overflow clamps to the int64 range and fails with ERANGE; an invalid base
// fails with EINVAL; no digits at all fails with "no digits found".
func Strtol(s string, base int) (int64, int, error) {
	if base != 0 && (base < 2 || base > 36) {
		return 0, 0, syserr.New(syserr.Strtol, int(unix.EINVAL))
	}

	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	switch {
	case (base == 0 || base == 16) && hasHexPrefix(s[i:]):
		i += 2
		base = 16
	case base == 0 && i < len(s) && s[i] == '0':
		base = 8
	case base == 0:
		base = 10
	}

	const cutoff = uint64(math.MaxInt64) + 1
	var (
		acc      uint64
		seen     bool
		overflow bool
	)
	for ; i < len(s); i++ {
		d := digitVal(s[i])
		if d >= base {
			break
		}
		seen = true
		if overflow {
			continue
		}
		if acc > (cutoff-uint64(d))/uint64(base) {
			overflow = true
			continue
		}
		acc = acc*uint64(base) + uint64(d)
	}

	if !seen {
		return 0, 0, syserr.NewLiteral(syserr.Strtol, noDigits)
	}

	if !neg && acc > math.MaxInt64 {
		overflow = true
	}
	if overflow {
		if neg {
			return math.MinInt64, i, syserr.New(syserr.Strtol, int(unix.ERANGE))
		}
		return math.MaxInt64, i, syserr.New(syserr.Strtol, int(unix.ERANGE))
	}

	if neg {
		return -int64(acc), i, nil
	}

	return int64(acc), i, nil
}

// hasHexPrefix only accepts the prefix when a hex digit follows, so "0x"
// alone parses as 0 with "x" left over.
func hasHexPrefix(s string) bool {
	return len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && digitVal(s[2]) < 16
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func digitVal(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}

	return 36
}
