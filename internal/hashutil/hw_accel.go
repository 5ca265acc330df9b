//go:build amd64 || arm64

package hashutil

// On amd64 and arm64 the standard library's crc32.Checksum dispatches
// to a hardware CRC32C implementation (SSE4.2 or the ARMv8 crypto
// extension), matching the reference implementation's compiled-in
// _mm_crc32_*/__crc32c* path.
const hardwareCRC32C = true
