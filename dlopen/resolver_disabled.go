//go:build !goplugin || !cgo

package dlopen

import "fmt"

const errNotImplemented = "dlopen.%s is disabled, build with -tags=goplugin and CGO_ENABLED=1"

// OpenFile is disabled in this build: Go's plugin package requires cgo and
// an explicit opt-in, mirroring the teacher's no_goplugin.go fallback for
// builds without CGO_ENABLED=1.
func OpenFile(path string) (Handle, error) {
	return nil, fmt.Errorf(errNotImplemented, "OpenFile")
}
