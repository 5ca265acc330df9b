//go:build !amd64 && !arm64

package hashutil

// On other architectures the standard library has no hardware CRC32C
// path, so we use the Murmur32 fallback, matching the reference
// implementation's #else branch.
const hardwareCRC32C = false
