package syserr

// Op identifies exactly one wrapped primitive.
//
// The values between OpFirst and OpLast form a contiguous, ordered range.
// The order only matters for range checks.
type Op int

const unknownOp = "?UNK?"

const (
	OpFirst Op = iota

	Accept
	Bind
	Close
	Closedir
	Dup
	Dup2
	Fclose
	Fcntl
	Fdopen
	Fflush
	Fileno
	Fopen
	Fputs
	Fstat
	Fsync
	Ftruncate
	Fwrite
	Getaddrinfo
	Getenv
	Gethostname
	GmtimeR
	Isatty
	Kill
	Link
	Linkat
	Listen
	Lseek
	Mkdir
	Mkdirat
	Mkdtemp
	Mkstemp
	Mmap
	Munmap
	Nanosleep
	NvmlDeviceGetCount
	NvmlDeviceGetHandleByIndex
	NvmlDeviceGetName
	NvmlInit
	NvmlShutdown
	Open
	Openat
	Opendir
	Prctl
	Read
	Readdir
	Rmdir
	SchedGetaffinity
	SchedSetaffinity
	Setenv
	Setsockopt
	Shutdown
	Socket
	Spawn
	Stat
	Strftime
	Strtol
	System
	Time
	Unlink
	Unlinkat
	Waitid
	Write

	OpLast
)

// opNames is indexed by Op. The sentinel slots stay empty.
var opNames = [...]string{
	OpFirst:                    "",
	Accept:                     "accept",
	Bind:                       "bind",
	Close:                      "close",
	Closedir:                   "closedir",
	Dup:                        "dup",
	Dup2:                       "dup2",
	Fclose:                     "fclose",
	Fcntl:                      "fcntl",
	Fdopen:                     "fdopen",
	Fflush:                     "fflush",
	Fileno:                     "fileno",
	Fopen:                      "fopen",
	Fputs:                      "fputs",
	Fstat:                      "fstat",
	Fsync:                      "fsync",
	Ftruncate:                  "ftruncate",
	Fwrite:                     "fwrite",
	Getaddrinfo:                "getaddrinfo",
	Getenv:                     "getenv",
	Gethostname:                "gethostname",
	GmtimeR:                    "gmtime_r",
	Isatty:                     "isatty",
	Kill:                       "kill",
	Link:                       "link",
	Linkat:                     "linkat",
	Listen:                     "listen",
	Lseek:                      "lseek",
	Mkdir:                      "mkdir",
	Mkdirat:                    "mkdirat",
	Mkdtemp:                    "mkdtemp",
	Mkstemp:                    "mkstemp",
	Mmap:                       "mmap",
	Munmap:                     "munmap",
	Nanosleep:                  "nanosleep",
	NvmlDeviceGetCount:         "nvmlDeviceGetCount",
	NvmlDeviceGetHandleByIndex: "nvmlDeviceGetHandleByIndex",
	NvmlDeviceGetName:          "nvmlDeviceGetName",
	NvmlInit:                   "nvmlInit",
	NvmlShutdown:               "nvmlShutdown",
	Open:                       "open",
	Openat:                     "openat",
	Opendir:                    "opendir",
	Prctl:                      "prctl",
	Read:                       "read",
	Readdir:                    "readdir",
	Rmdir:                      "rmdir",
	SchedGetaffinity:           "sched_getaffinity",
	SchedSetaffinity:           "sched_setaffinity",
	Setenv:                     "setenv",
	Setsockopt:                 "setsockopt",
	Shutdown:                   "shutdown",
	Socket:                     "socket",
	Spawn:                      "spawn",
	Stat:                       "stat",
	Strftime:                   "strftime",
	Strtol:                     "strtol",
	System:                     "system",
	Time:                       "time",
	Unlink:                     "unlink",
	Unlinkat:                   "unlinkat",
	Waitid:                     "waitid",
	Write:                      "write",
	OpLast:                     "",
}

// Valid reports whether o lies strictly between OpFirst and OpLast.
func (o Op) Valid() bool {
	return o > OpFirst && o < OpLast
}

// String returns the short name of the operation, or "?UNK?" for the
// sentinels and anything out of range.
func (o Op) String() string {
	if !o.Valid() {
		return unknownOp
	}

	return opNames[o]
}

// Error makes an Op usable as an errors.Is target:
//
//	if errors.Is(err, syserr.Open) { ... }
func (o Op) Error() string {
	return o.String()
}

// Ops returns all valid operations in registry order.
func Ops() []Op {
	ops := make([]Op, 0, OpLast-OpFirst-1)
	for o := OpFirst + 1; o < OpLast; o++ {
		ops = append(ops, o)
	}

	return ops
}

// Lookup returns the Op with the given short name.
func Lookup(name string) (Op, bool) {
	for o := OpFirst + 1; o < OpLast; o++ {
		if opNames[o] == name {
			return o, true
		}
	}

	return OpFirst, false
}
