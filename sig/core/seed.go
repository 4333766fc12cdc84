package core

// DeriveSeed maps (base, index) to a decorrelated per-sample seed using a
// splitmix64 finalizer. Adjacent indices yield statistically independent
// generator streams, so samples never share correlated randomness.
func DeriveSeed(base int64, index int) int64 {
	z := uint64(base) + (uint64(index)+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
