// Package terrago provides a compact in-memory store for large
// collections of labeled 3D terrain points.
//
// Coordinates are quantized to signed 16-bit words against the store's
// running bounding box, cutting per-point coordinate storage in half
// while keeping identity lookup O(1) and spatial queries exact.
//
// # Quick Start
//
//	store, _ := terrago.New(terrago.WithInitialCapacity(1024))
//
//	_ = store.AddPoints([]point.Point{
//	    point.New(1, 0, 0, 0),
//	    point.New(2, 10, 0, 2),
//	    point.New(3, 0, 10, 4),
//	})
//
//	p, _ := store.GetPoint(2)
//	nearest, _ := store.KNearest(point.New(0, 1, 1, 0), 2)
//	grade, _ := store.Slope(1, 3)
//
// # Precision Model
//
// Stored words are always encoded against the current bounds. When an
// insert widens the bounds, every stored triple is re-encoded in one
// pass, so a round trip through the store moves a coordinate by at most
// half a quantization step per re-encode, where a step is
// (max-min)/32767 on that axis. Points ingested after the bounds have
// stopped widening round-trip within half a step. Prefer AddPoints for
// bulk loads: the whole batch widens the bounds once, costing a single
// re-encode pass and a single growth check.
//
// # Concurrency
//
// A PointStore has no internal synchronization. Callers must either
// confine a store to one goroutine or serialize all mutations against
// all reads externally.
package terrago
