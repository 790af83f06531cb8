//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// useRuntimeIndexByte is true when the runtime's IndexByte uses AVX2.
var useRuntimeIndexByte = cpu.X86.HasAVX2

// Features lists the CPU features relevant to byte search.
func Features() []string {
	var f []string
	if cpu.X86.HasSSE2 {
		f = append(f, "sse2")
	}
	if cpu.X86.HasSSE42 {
		f = append(f, "sse4.2")
	}
	if cpu.X86.HasAVX2 {
		f = append(f, "avx2")
	}
	if cpu.X86.HasAVX512BW {
		f = append(f, "avx512bw")
	}
	return f
}
