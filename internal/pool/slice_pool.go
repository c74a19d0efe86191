package pool

import "sync"

// Pool of row-index slices reused by batch readers when materializing the
// per-row byte views of a decoded frame.
var byteSlicesPool = sync.Pool{
	New: func() any { return &[][]byte{} },
}

// GetByteSlices retrieves and resizes a [][]byte slice from the pool.
//
// The returned slice will have the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// Elements are not cleared; the caller is expected to assign every index.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	rows, cleanup := pool.GetByteSlices(batch.RowCount())
//	defer cleanup()
//	// Use rows slice...
func GetByteSlices(size int) ([][]byte, func()) {
	ptr, _ := byteSlicesPool.Get().(*[][]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([][]byte, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { byteSlicesPool.Put(ptr) }
}
