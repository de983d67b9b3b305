// Package mmslab provides a slab whose header and nodes live in a single
// memory-mapped file, so its contents and slots survive a restart.
package mmslab

import (
	"io"
	"iter"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/webbmaffian/go-slab/internal/arena"
	"github.com/webbmaffian/go-slab/internal/utils"
	"github.com/webbmaffian/go-slab/slab"
)

// Opens the slab at filepath, or creates it when the file doesn't exist. When
// creating, capacity is mandatory. When opening, a provided capacity must match
// the file.
// The element type (`T`) MUST NOT contain any pointer, string nor slice.
func New[T any, S utils.Unsigned](filepath string, capacity ...int) (*Slab[T, S], error) {
	var c int

	if capacity != nil {
		c = capacity[0]
	}

	return open[T, S](filepath, c, false)
}

// Maps an existing slab read-only. Mutating methods fail with ErrReadOnly and
// elements must not be written through pointers returned by Get.
func OpenRO[T any, S utils.Unsigned](filepath string) (*Slab[T, S], error) {
	return open[T, S](filepath, 0, true)
}

func open[T any, S utils.Unsigned](filepath string, capacity int, readonly bool) (*Slab[T, S], error) {
	if utils.HasPointers[T]() {
		return nil, ErrPointerType
	}

	s := &Slab[T, S]{
		readonly: readonly,
	}

	if err := s.open(filepath, capacity); err != nil {
		s.release()
		return nil, err
	}

	return s, nil
}

// Memory-mapped slab. Not safe for concurrent use, neither within one process
// nor across processes mapping the same file.
type Slab[T any, S utils.Unsigned] struct {
	data     mmap.MMap
	file     *os.File
	head     *header[S]
	arena    arena.Arena[T, S]
	readonly bool
}

func (s *Slab[T, S]) open(filepath string, capacity int) (err error) {
	flag, prot := os.O_RDWR, mmap.RDWR

	if s.readonly {
		flag, prot = os.O_RDONLY, mmap.RDONLY
	}

	expected := newHeader[T, S](capacity)

	var created bool
	info, err := os.Stat(filepath)

	if err == nil {
		if s.file, err = os.OpenFile(filepath, flag, 0); err != nil {
			return errors.WithStack(err)
		}

		if err = s.validateHead(info.Size(), expected, capacity); err != nil {
			return errors.WithMessage(err, filepath)
		}
	} else if os.IsNotExist(err) && !s.readonly {
		if err = arena.CheckSize[T, S](capacity, expected.nodesOffset()); err != nil {
			return errors.WithMessage(err, "creating "+filepath)
		}

		if s.file, err = os.Create(filepath); err != nil {
			return errors.WithStack(err)
		}

		created = true

		// A half-written file would fail every later open.
		defer func() {
			if err != nil {
				s.release()
				err = multierror.Append(err, os.Remove(filepath)).ErrorOrNil()
			}
		}()

		if err = s.file.Truncate(int64(expected.fileSize())); err != nil {
			return errors.WithStack(err)
		}
	} else {
		return errors.WithStack(err)
	}

	if s.data, err = mmap.Map(s.file, prot, 0); err != nil {
		return errors.WithStack(err)
	}

	s.head = utils.BytesToPointer[header[S]](s.data)

	if created {
		*s.head = *expected
	}

	nodes := utils.BytesToSlice[arena.Node[T, S]](s.data[s.head.nodesOffset():], s.head.capacity())
	s.arena = arena.New(&s.head.list, nodes)

	if created {
		s.arena.Reset()
		return s.Flush()
	}

	return errors.WithMessage(s.arena.Validate(), filepath)
}

func (s *Slab[T, S]) validateHead(fileSize int64, expected *header[S], capacity int) (err error) {
	if fileSize < int64(expected.headSize) {
		return errors.WithMessage(ErrLayout, "file too small")
	}

	if _, err = s.file.Seek(0, io.SeekStart); err != nil {
		return errors.WithStack(err)
	}

	b := make([]byte, expected.headSize)

	if _, err = io.ReadFull(s.file, b); err != nil {
		return errors.WithStack(err)
	}

	head := utils.BytesToPointer[header[S]](b)

	if !head.matches(expected) {
		return errors.WithMessage(ErrLayout, "element or slot type differs")
	}

	if err = arena.CheckSize[T, S](head.capacity(), head.nodesOffset()); err != nil {
		return errors.WithMessage(ErrLayout, err.Error())
	}

	if capacity != 0 && capacity != head.capacity() {
		return errors.WithMessagef(ErrLayout, "capacity is %d, not %d", head.capacity(), capacity)
	}

	if fileSize != int64(head.fileSize()) {
		return errors.WithMessagef(ErrLayout, "file size is %d, expected %d", fileSize, head.fileSize())
	}

	return nil
}

// Unmaps and closes whatever has been opened so far.
func (s *Slab[T, S]) release() (result *multierror.Error) {
	if s.data != nil {
		result = multierror.Append(result, s.data.Unmap())
		s.data = nil
		s.head = nil
		s.arena = arena.Arena[T, S]{}
	}

	if s.file != nil {
		result = multierror.Append(result, s.file.Close())
		s.file = nil
	}

	return
}

func (s *Slab[T, S]) Flush() error {
	if s.readonly {
		return nil
	}

	return errors.WithStack(s.data.Flush())
}

// Flushes, unmaps and closes the file. The slab must not be used afterwards.
func (s *Slab[T, S]) Close() error {
	var result *multierror.Error

	if !s.readonly && s.data != nil {
		result = multierror.Append(result, s.data.Flush())
	}

	result = multierror.Append(result, s.release())

	return result.ErrorOrNil()
}

func (s *Slab[T, S]) Cap() int {
	return s.arena.Cap()
}

func (s *Slab[T, S]) Len() int {
	return s.arena.Len()
}

func (s *Slab[T, S]) Free() int {
	return s.arena.Free()
}

func (s *Slab[T, S]) IsEmpty() bool {
	return s.arena.IsEmpty()
}

func (s *Slab[T, S]) IsFull() bool {
	return s.arena.IsFull()
}

func (s *Slab[T, S]) PushFront(val T) (slot S, err error) {
	if s.readonly {
		return utils.Max[S](), ErrReadOnly
	}

	return s.arena.PushFront(val)
}

func (s *Slab[T, S]) PopBack() (val T, err error) {
	if s.readonly {
		err = ErrReadOnly
		return
	}

	return s.arena.PopBack()
}

func (s *Slab[T, S]) Remove(slot S) (val T, err error) {
	if s.readonly {
		err = ErrReadOnly
		return
	}

	return s.arena.Remove(slot)
}

// Pushes all values in order, or none of them when they do not fit.
func (s *Slab[T, S]) Extend(values ...T) error {
	if s.readonly {
		return ErrReadOnly
	}

	return s.arena.Extend(values...)
}

func (s *Slab[T, S]) Get(slot S) (*T, error) {
	return s.arena.Get(slot)
}

func (s *Slab[T, S]) Contains(slot S) bool {
	return s.arena.Contains(slot)
}

func (s *Slab[T, S]) Front() (S, bool) {
	return s.arena.Front()
}

func (s *Slab[T, S]) Back() (S, bool) {
	return s.arena.Back()
}

func (s *Slab[T, S]) Clear() error {
	if s.readonly {
		return ErrReadOnly
	}

	s.arena.Reset()
	return nil
}

func (s *Slab[T, S]) Iterate() slab.Iterator[T, S] {
	return s.arena.Iterate()
}

func (s *Slab[T, S]) All() iter.Seq2[S, *T] {
	return s.arena.All()
}

func (s *Slab[T, S]) Values() iter.Seq[T] {
	return s.arena.Values()
}

func (s *Slab[T, S]) Backward() iter.Seq2[S, *T] {
	return s.arena.Backward()
}

// Walks the active chain and the free list of the mapped file.
func (s *Slab[T, S]) Validate() error {
	return s.arena.Validate()
}
