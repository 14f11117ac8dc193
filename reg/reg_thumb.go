//go:build thumb

package reg

import "embedded/mmio"

type U32 struct{ r mmio.U32 }

func (r *U32) Load() uint32                { return r.r.Load() }
func (r *U32) Store(v uint32)              { r.r.Store(v) }
func (r *U32) SetBits(mask uint32)         { r.r.SetBits(mask) }
func (r *U32) ClearBits(mask uint32)       { r.r.ClearBits(mask) }
func (r *U32) LoadBits(mask uint32) uint32 { return r.r.LoadBits(mask) }
func (r *U32) Addr() uintptr               { return r.r.Addr() }

type R32[T Bits] struct{ r mmio.R32[T] }

func (r *R32[T]) Load() T           { return r.r.Load() }
func (r *R32[T]) Store(v T)         { r.r.Store(v) }
func (r *R32[T]) SetBits(mask T)    { r.r.SetBits(mask) }
func (r *R32[T]) ClearBits(mask T)  { r.r.ClearBits(mask) }
func (r *R32[T]) LoadBits(mask T) T { return r.r.LoadBits(mask) }
func (r *R32[T]) Addr() uintptr     { return r.r.Addr() }

type U8 struct{ r mmio.U8 }

func (r *U8) Load() uint8   { return r.r.Load() }
func (r *U8) Store(v uint8) { r.r.Store(v) }
func (r *U8) Addr() uintptr { return r.r.Addr() }
