package ui

// ID is a stable 64-bit identity for one logical element across frames,
// independent of its position in the transient per-frame tree. The zero
// value means "no identity": anonymous elements are excluded from
// interaction tracking and from the bounds index.
//
// IDs are hashes. Two distinct keys hashing to the same ID silently alias
// each other's interaction and lookup state; this is a known limitation and
// is not detected.
type ID uint64

// NoID marks an anonymous element.
const NoID ID = 0

const (
	fnvOffset = 0xcbf29ce484222325
	fnvPrime  = 0x100000001b3
)

// mix64 is the splitmix64 finalizer. It gives the avalanche quality the
// combine operation needs so sibling keys like 0,1,2 don't cluster.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func hashString(seed uint64, s string) uint64 {
	h := seed
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return mix64(h)
}

func hashUint(seed, v uint64) uint64 {
	h := seed
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= fnvPrime
		v >>= 8
	}
	return mix64(h)
}

func nonZero(h uint64) ID {
	if h == 0 {
		h = fnvOffset
	}
	return ID(h)
}

// NewID derives a root identity from a string key.
func NewID(key string) ID { return nonZero(hashString(fnvOffset, key)) }

// NewIDUint derives a root identity from an integer key.
func NewIDUint(key uint64) ID { return nonZero(hashUint(fnvOffset, key)) }

// Child derives a stable child identity from id and a local string key.
// Order-sensitive: a.Child("x") never equals b.Child("x") for a != b.
func (id ID) Child(key string) ID { return nonZero(hashString(uint64(id), key)) }

// ChildIndex derives a stable child identity from id and a local index,
// e.g. for rows of a list.
func (id ID) ChildIndex(i int) ID { return nonZero(hashUint(uint64(id), uint64(i))) }

// IsNone reports whether id is the anonymous sentinel.
func (id ID) IsNone() bool { return id == NoID }
