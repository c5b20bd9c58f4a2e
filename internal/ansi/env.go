// Package ansi provides C library shaped helpers whose failures are not
// always reported through errno: a missing variable, a number without
// digits, an output buffer that is too small.
package ansi

import (
	"os"

	"codeberg.org/mutker/oserr/internal/syserr"
)

// Getenv returns the value of name, or a getenv error when it is not set.
func Getenv(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", syserr.NewLiteral(syserr.Getenv, "environment variable "+name+" not defined!")
	}

	return v, nil
}
