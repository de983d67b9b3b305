package arena

type Error string

var _ error = Error("")

func (err Error) Error() string {
	return string(err)
}

const (
	ErrCapacity    = Error("slab capacity exceeded")
	ErrEmpty       = Error("slab is empty")
	ErrInvalidSlot = Error("invalid slot or slot doesn't contain an element")
	ErrCorrupt     = Error("slab is corrupt")
)
