package world

// PropertyBag holds the seven typed property buckets a weenie or object
// description carries: keyed maps of int, int64, bool, float, string,
// data-id (DID) and instance-id (IID) values. Each bucket is prefixed by
// a u16 entry count, mirroring the on-disk weenie template layout.
type PropertyBag struct {
	Ints     map[uint32]int32
	Int64s   map[uint32]int64
	Bools    map[uint32]bool
	Floats   map[uint32]float64
	Strings  map[uint32]string
	DIDs     map[uint32]uint32
	IIDs     map[uint32]uint32
}

func NewPropertyBag() PropertyBag {
	return PropertyBag{
		Ints:    make(map[uint32]int32),
		Int64s:  make(map[uint32]int64),
		Bools:   make(map[uint32]bool),
		Floats:  make(map[uint32]float64),
		Strings: make(map[uint32]string),
		DIDs:    make(map[uint32]uint32),
		IIDs:    make(map[uint32]uint32),
	}
}
