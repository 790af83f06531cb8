//go:build arm64

package simd

import "golang.org/x/sys/cpu"

// useRuntimeIndexByte is true when the runtime's IndexByte uses NEON.
var useRuntimeIndexByte = cpu.ARM64.HasASIMD

// Features lists the CPU features relevant to byte search.
func Features() []string {
	var f []string
	if cpu.ARM64.HasASIMD {
		f = append(f, "asimd")
	}
	if cpu.ARM64.HasSVE {
		f = append(f, "sve")
	}
	return f
}
