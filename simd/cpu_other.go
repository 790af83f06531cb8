//go:build !amd64 && !arm64

package simd

var useRuntimeIndexByte = false

// Features lists the CPU features relevant to byte search. No vector
// features are detected on this architecture.
func Features() []string {
	return nil
}
