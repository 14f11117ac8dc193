//go:build !thumb

package reg

import (
	"sync/atomic"
	"unsafe"
)

type U32 struct{ v atomic.Uint32 }

func (r *U32) Load() uint32                { return r.v.Load() }
func (r *U32) Store(v uint32)              { r.v.Store(v) }
func (r *U32) SetBits(mask uint32)         { r.v.Or(mask) }
func (r *U32) ClearBits(mask uint32)       { r.v.And(^mask) }
func (r *U32) LoadBits(mask uint32) uint32 { return r.v.Load() & mask }
func (r *U32) Addr() uintptr               { return uintptr(unsafe.Pointer(r)) }

type R32[T Bits] struct{ v atomic.Uint32 }

func (r *R32[T]) Load() T           { return T(r.v.Load()) }
func (r *R32[T]) Store(v T)         { r.v.Store(uint32(v)) }
func (r *R32[T]) SetBits(mask T)    { r.v.Or(uint32(mask)) }
func (r *R32[T]) ClearBits(mask T)  { r.v.And(^uint32(mask)) }
func (r *R32[T]) LoadBits(mask T) T { return T(r.v.Load()) & mask }
func (r *R32[T]) Addr() uintptr     { return uintptr(unsafe.Pointer(r)) }

// U8 is not atomic. Byte wide registers are only written by a single
// goroutine in the software models.
type U8 struct{ v uint8 }

func (r *U8) Load() uint8   { return r.v }
func (r *U8) Store(v uint8) { r.v = v }
func (r *U8) Addr() uintptr { return uintptr(unsafe.Pointer(r)) }
