package ansi

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const (
	yearOverflow     = "Year doesn't fit into integer"
	bufferTooSmall   = "destination buffer too small"
	secondsPerYear   = 31556952 // mean Gregorian year
	tmYearBase       = 1900
	unixEpochYear    = 1970
	maxRepresentable = math.MaxInt32 + tmYearBase
	minRepresentable = math.MinInt32 + tmYearBase
)

// Time returns the current calendar time in seconds since the epoch.
func Time() (int64, error) {
	var t unix.Time_t
	r, err := unix.Time(&t)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Time, err)
	}

	return int64(r), nil
}

// GmtimeR breaks t down into UTC. Like gmtime_r it fails when the year
// cannot be stored in a C int counted from 1900.
func GmtimeR(t int64) (time.Time, error) {
	years := t / secondsPerYear
	if years > maxRepresentable-unixEpochYear || years < minRepresentable-unixEpochYear {
		return time.Time{}, syserr.NewLiteral(syserr.GmtimeR, yearOverflow)
	}

	tm := time.Unix(t, 0).UTC()
	if y := int64(tm.Year()); y > maxRepresentable || y < minRepresentable {
		return time.Time{}, syserr.NewLiteral(syserr.GmtimeR, yearOverflow)
	}

	return tm, nil
}

// Strftime formats tm according to format and fails when the result plus
// its terminating NUL would not fit into size bytes.
//
// Supported conversions: %a %A %b %B %C %d %e %F %H %I %j %m %M %n %p %R
// %S %t %T %u %y %Y %z %Z %%. Unknown conversions are copied verbatim.
func Strftime(format string, tm time.Time, size int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			continue
		}
		i++
		writeConversion(&b, format[i], tm)
	}

	if b.Len()+1 > size {
		return "", syserr.NewLiteral(syserr.Strftime, bufferTooSmall)
	}

	return b.String(), nil
}

func writeConversion(b *strings.Builder, c byte, tm time.Time) {
	switch c {
	case 'a':
		b.WriteString(tm.Weekday().String()[:3])
	case 'A':
		b.WriteString(tm.Weekday().String())
	case 'b':
		b.WriteString(tm.Month().String()[:3])
	case 'B':
		b.WriteString(tm.Month().String())
	case 'C':
		pad(b, tm.Year()/100, 2, '0')
	case 'd':
		pad(b, tm.Day(), 2, '0')
	case 'e':
		pad(b, tm.Day(), 2, ' ')
	case 'F':
		b.WriteString(tm.Format("2006-01-02"))
	case 'H':
		pad(b, tm.Hour(), 2, '0')
	case 'I':
		h := tm.Hour() % 12
		if h == 0 {
			h = 12
		}
		pad(b, h, 2, '0')
	case 'j':
		pad(b, tm.YearDay(), 3, '0')
	case 'm':
		pad(b, int(tm.Month()), 2, '0')
	case 'M':
		pad(b, tm.Minute(), 2, '0')
	case 'n':
		b.WriteByte('\n')
	case 'p':
		if tm.Hour() < 12 {
			b.WriteString("AM")
		} else {
			b.WriteString("PM")
		}
	case 'R':
		b.WriteString(tm.Format("15:04"))
	case 'S':
		pad(b, tm.Second(), 2, '0')
	case 't':
		b.WriteByte('\t')
	case 'T':
		b.WriteString(tm.Format("15:04:05"))
	case 'u':
		wd := int(tm.Weekday())
		if wd == 0 {
			wd = 7
		}
		b.WriteString(strconv.Itoa(wd))
	case 'y':
		pad(b, tm.Year()%100, 2, '0')
	case 'Y':
		b.WriteString(strconv.Itoa(tm.Year()))
	case 'z':
		b.WriteString(tm.Format("-0700"))
	case 'Z':
		b.WriteString(tm.Format("MST"))
	case '%':
		b.WriteByte('%')
	default:
		b.WriteByte('%')
		b.WriteByte(c)
	}
}

func pad(b *strings.Builder, v, width int, fill byte) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		b.WriteByte(fill)
	}
	b.WriteString(s)
}
