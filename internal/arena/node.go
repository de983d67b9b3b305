package arena

import "github.com/webbmaffian/go-slab/internal/utils"

type State uint8

const (
	Vacant State = iota
	Occupied
)

// Header holds the scalar state of an arena. All positions use the maximum
// value of S as "none".
type Header[S utils.Unsigned] struct {
	Head     S
	Tail     S
	FreeHead S
	Len      S
	Capacity S
}

// Node is either occupied, with Prev and Next linking it into the active chain,
// or vacant, with Next pointing at the following free node and Prev unused.
// The zero value is a vacant node.
type Node[T any, S utils.Unsigned] struct {
	Value T
	Prev  S
	Next  S
	State State
}
