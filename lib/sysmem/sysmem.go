/*package sysmem reports how much memory the machine has, so that callers can
refuse allocations that could never succeed instead of being killed part-way
through a file.*/
package sysmem

// DefaultMemoryBytes is returned when the platform can't report its memory.
const DefaultMemoryBytes uint64 = 4 << 30

// Total returns the total system memory in bytes and whether the value came
// from the operating system (true) or is DefaultMemoryBytes (false).
func Total() (bytes uint64, reliable bool) {
	bytes, ok := totalSystemMemory()
	if !ok || bytes == 0 {
		return DefaultMemoryBytes, false
	}
	return bytes, true
}

// TotalBytes returns just the value reported by Total.
func TotalBytes() uint64 {
	bytes, _ := Total()
	return bytes
}
