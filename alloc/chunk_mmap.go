//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package alloc

import "golang.org/x/sys/unix"

const mmapSupported = true

// mapChunk maps size bytes of private anonymous memory.
func mapChunk(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func unmapChunk(buf []byte) error {
	return unix.Munmap(buf)
}
