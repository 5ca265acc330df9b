// Package hashutil provides the hashing primitives used by the atom
// table: a 32-bit string hash and a fast range-reduction function.
//
// The reference implementation hand-wrote CRC32C using the SSE4.2
// _mm_crc32_* / ARM __crc32c* intrinsics when available, falling back
// to a Murmur3-flavored hash otherwise. The Go standard library's
// hash/crc32 package already does exactly this dispatch internally:
// crc32.MakeTable(crc32.Castagnoli) selects a hardware-accelerated
// implementation on amd64 and arm64 at runtime (see crc32_amd64.go /
// crc32_arm64.go in the standard library) and falls back to a
// software table otherwise, so there is no ecosystem library that
// improves on it — see DESIGN.md. We keep the Murmur3 fallback from
// the reference source for the rare architectures where the stdlib
// has no hardware path, selected the same way the original selected
// between compiled-in variants: a build-time constant, not a runtime
// probe, since Go's crc32 already probes hardware support itself and
// a second layer of probing would be redundant.
package hashutil

import "hash/crc32"

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// String hashes b the way the atom table hashes interned text: CRC32C
// when the platform's stdlib implementation is hardware-accelerated,
// Murmur32 otherwise. Zero is never returned; it is remapped to a
// fixed nonzero sentinel so that zero can mark empty hash-table slots.
func String(b []byte) uint32 {
	var h uint32
	if hardwareCRC32C {
		h = crc32.Checksum(b, castagnoli)
	} else {
		h = murmur32(b)
	}
	if h == 0 {
		h = 1024
	}
	return h
}

// murmur32 is a direct port of the Murmur3-derived fallback hash from
// the reference implementation (itself lifted from the Wikipedia
// description of MurmurHash3_x86_32).
func murmur32(key []byte) uint32 {
	const seed uint32 = 4253307714
	h := seed
	length := len(key)
	i := 0
	for ; length-i >= 4; i += 4 {
		k := uint32(key[i]) | uint32(key[i+1])<<8 | uint32(key[i+2])<<16 | uint32(key[i+3])<<24
		h ^= scramble(k)
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}
	var k uint32
	for j := length - 1; j >= i; j-- {
		k <<= 8
		k |= uint32(key[j])
	}
	h ^= scramble(k)
	h ^= uint32(length)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func scramble(k uint32) uint32 {
	k *= 0xcc9e2d51
	k = (k << 15) | (k >> 17)
	k *= 0x1b873593
	return k
}

// FastReduce32 maps x uniformly into [0, n) using Lemire's
// multiply-shift trick, the same reduction the atom table uses in
// place of a modulo to pick a starting probe index.
func FastReduce32(x, n uint32) uint32 {
	return uint32((uint64(x) * uint64(n)) >> 32)
}
