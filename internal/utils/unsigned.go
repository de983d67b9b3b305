package utils

type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// Max returns the largest value representable by S.
func Max[S Unsigned]() S {
	return ^S(0)
}

// Fits reports whether n can be stored in S.
func Fits[S Unsigned](n int) bool {
	return n >= 0 && uint64(n) <= uint64(Max[S]())
}
