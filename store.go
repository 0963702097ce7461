package terrago

import (
	"fmt"
	"iter"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/terrago/index/kdtree"
	"github.com/hupe1980/terrago/point"
	"github.com/hupe1980/terrago/quantization"
)

// DefaultInitialCapacity is the slot capacity used when no hint is given.
const DefaultInitialCapacity = 64

// Minimum store size before snapshot decoding fans out across cores.
const parallelSnapshotThreshold = 4096

// PointStore is a growable, contiguous container of quantized terrain
// points with O(1) identity lookup and a lazily built spatial index.
//
// Storage is slot-ordered: ids and coords are parallel arrays, one
// entry (three int16 words) per slot, and slots maps each identity to
// its slot. Stored words are always encoded against the current
// bounds; inserts that widen the bounds re-encode every stored triple
// so decoding never mixes bounds generations.
//
// PointStore is not safe for concurrent use. Callers must serialize
// all mutations against all reads.
type PointStore struct {
	slots  map[uint32]int
	ids    []uint32
	coords []int16 // three words per slot
	idset  *roaring.Bitmap
	bounds quantization.Bounds

	// version advances on every mutation; the cached tree is valid
	// only while built == version.
	version uint64
	built   uint64
	tree    *kdtree.Tree

	logger *Logger
}

// New creates an empty PointStore.
func New(optFns ...Option) (*PointStore, error) {
	opts := options{
		initialCapacity: DefaultInitialCapacity,
		logger:          NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.initialCapacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opts.initialCapacity)
	}

	s := &PointStore{
		slots:  make(map[uint32]int, opts.initialCapacity),
		ids:    make([]uint32, 0, opts.initialCapacity),
		coords: make([]int16, 0, 3*opts.initialCapacity),
		idset:  roaring.New(),
		bounds: quantization.NewBounds(),
		logger: opts.logger,
	}

	s.logger.Info("point store created", "capacity", opts.initialCapacity)

	return s, nil
}

// AddPoint inserts a single point. Inserting an identity the store
// already holds fails with ErrDuplicateID and leaves the store
// untouched. Amortized O(1); O(n) when the insert widens the bounds or
// forces growth.
func (s *PointStore) AddPoint(p point.Point) error {
	if s.idset.Contains(p.ID) {
		return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
	}

	s.ingest([]point.Point{p})

	return nil
}

// AddPoints inserts a batch of points atomically: identities are
// validated against the store and within the batch before anything is
// mutated, so a failed batch leaves the store untouched. The final
// state matches sequential AddPoint calls exactly in bounds, count and
// identities, and within the quantization round-trip tolerance in
// coordinates; the batch path widens the bounds once, so it is both
// faster and slightly more precise.
func (s *PointStore) AddPoints(ps []point.Point) error {
	if len(ps) == 0 {
		return nil
	}

	seen := roaring.New()
	for _, p := range ps {
		if s.idset.Contains(p.ID) || seen.Contains(p.ID) {
			return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen.Add(p.ID)
	}

	s.ingest(ps)

	return nil
}

// ingest appends pre-validated points: widen bounds, re-encode if they
// actually widened, grow once, append, invalidate the index.
func (s *PointStore) ingest(ps []point.Point) {
	widened := s.bounds
	for _, p := range ps {
		widened.Extend(p.X, p.Y, p.Z)
	}
	if widened != s.bounds {
		s.reencode(s.bounds, widened)
		s.bounds = widened
	}

	s.grow(len(ps))

	q := quantization.NewQuantizer(s.bounds)
	for _, p := range ps {
		qx, qy, qz := q.Encode(p.X, p.Y, p.Z)
		s.slots[p.ID] = len(s.ids)
		s.idset.Add(p.ID)
		s.ids = append(s.ids, p.ID)
		s.coords = append(s.coords, qx, qy, qz)
	}

	s.version++
	s.tree = nil // discard, never patch

	s.logger.Debug("points added", "count", len(ps), "size", len(s.ids))
}

// reencode rewrites every stored triple from prev bounds to next
// bounds. Each pass moves a coordinate by at most half a quantization
// step of the next bounds.
func (s *PointStore) reencode(prev, next quantization.Bounds) {
	if len(s.ids) == 0 {
		return
	}

	dec := quantization.NewQuantizer(prev)
	enc := quantization.NewQuantizer(next)
	for i := 0; i < len(s.ids); i++ {
		x, y, z := dec.Decode(s.coords[3*i], s.coords[3*i+1], s.coords[3*i+2])
		s.coords[3*i], s.coords[3*i+1], s.coords[3*i+2] = enc.Encode(x, y, z)
	}

	s.logger.Debug("bounds widened, store re-encoded", "size", len(s.ids))
}

// grow ensures capacity for extra more slots, doubling until it fits.
func (s *PointStore) grow(extra int) {
	need := len(s.ids) + extra
	if need <= cap(s.ids) {
		return
	}

	newCap := cap(s.ids)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap *= 2
	}

	ids := make([]uint32, len(s.ids), newCap)
	copy(ids, s.ids)
	s.ids = ids

	coords := make([]int16, len(s.coords), 3*newCap)
	copy(coords, s.coords)
	s.coords = coords

	s.logger.Debug("storage grown", "capacity", newCap)
}

// GetPoint returns the point with the given identity, decoded against
// the current bounds. O(1).
func (s *PointStore) GetPoint(id uint32) (point.Point, error) {
	slot, ok := s.slots[id]
	if !ok {
		return point.Point{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return s.pointAt(slot), nil
}

// GetPointAt returns the point in the given slot (insertion order).
// O(1).
func (s *PointStore) GetPointAt(slot int) (point.Point, error) {
	if slot < 0 || slot >= len(s.ids) {
		return point.Point{}, fmt.Errorf("%w: %d", ErrOutOfRange, slot)
	}
	return s.pointAt(slot), nil
}

func (s *PointStore) pointAt(slot int) point.Point {
	q := quantization.NewQuantizer(s.bounds)
	x, y, z := q.Decode(s.coords[3*slot], s.coords[3*slot+1], s.coords[3*slot+2])
	return point.Point{ID: s.ids[slot], X: x, Y: y, Z: z}
}

// Count returns the number of stored points.
func (s *PointStore) Count() int {
	return len(s.ids)
}

// Contains reports whether the identity is present.
func (s *PointStore) Contains(id uint32) bool {
	return s.idset.Contains(id)
}

// Bounds returns the running bounding box of all coordinates ever
// inserted. Bounds only widen; they never shrink.
func (s *PointStore) Bounds() quantization.Bounds {
	return s.bounds
}

// IDs iterates all identities in ascending order.
func (s *PointStore) IDs() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		it := s.idset.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Points iterates all points in slot (insertion) order.
func (s *PointStore) Points() iter.Seq[point.Point] {
	return func(yield func(point.Point) bool) {
		for slot := range s.ids {
			if !yield(s.pointAt(slot)) {
				return
			}
		}
	}
}

// Distance returns the Euclidean distance between two stored points.
func (s *PointStore) Distance(id1, id2 uint32) (float32, error) {
	a, b, err := s.pair(id1, id2)
	if err != nil {
		return 0, err
	}
	return a.DistanceTo(b), nil
}

// Slope returns the percent grade from id1 to id2. See point.SlopeTo
// for the vertical and coincident cases.
func (s *PointStore) Slope(id1, id2 uint32) (float32, error) {
	a, b, err := s.pair(id1, id2)
	if err != nil {
		return 0, err
	}
	return a.SlopeTo(b), nil
}

// Bearing returns the compass bearing from id1 to id2 in degrees,
// in [0, 360).
func (s *PointStore) Bearing(id1, id2 uint32) (float32, error) {
	a, b, err := s.pair(id1, id2)
	if err != nil {
		return 0, err
	}
	return a.BearingTo(b), nil
}

func (s *PointStore) pair(id1, id2 uint32) (point.Point, point.Point, error) {
	a, err := s.GetPoint(id1)
	if err != nil {
		return point.Point{}, point.Point{}, err
	}
	b, err := s.GetPoint(id2)
	if err != nil {
		return point.Point{}, point.Point{}, err
	}
	return a, b, nil
}

// KNearest returns the k stored points closest to q under Euclidean
// distance, ordered by distance with ties resolved in slot order. The
// spatial index is built on first use and reused until the next
// mutation; fewer than k points are returned when the store holds
// fewer.
func (s *PointStore) KNearest(q point.Point, k int) ([]point.Point, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if len(s.ids) == 0 {
		return nil, ErrEmptyStore
	}

	tree, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}

	results, err := tree.KNearest(q.Coords(), k)
	if err != nil {
		return nil, translateError(err)
	}

	return s.resolve(results), nil
}

// WithinRadius returns every stored point within radius of center
// (inclusive), ordered by distance with ties resolved in slot order.
// An empty store yields an empty result.
func (s *PointStore) WithinRadius(center point.Point, radius float32) ([]point.Point, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if len(s.ids) == 0 {
		return []point.Point{}, nil
	}

	tree, err := s.ensureIndex()
	if err != nil {
		return nil, err
	}

	results, err := tree.WithinRadius(center.Coords(), radius)
	if err != nil {
		return nil, translateError(err)
	}

	return s.resolve(results), nil
}

func (s *PointStore) resolve(results []kdtree.Result) []point.Point {
	out := make([]point.Point, len(results))
	for i, r := range results {
		out[i] = s.pointAt(r.Slot)
	}
	return out
}

// ensureIndex returns the spatial index for the current store version,
// rebuilding it from a dequantized snapshot when stale. Cost is
// O(n log n) on rebuild, memoized until the next mutation.
func (s *PointStore) ensureIndex() (*kdtree.Tree, error) {
	if s.tree != nil && s.built == s.version {
		return s.tree, nil
	}

	buf, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	s.tree = kdtree.Build(buf)
	s.built = s.version

	s.logger.Debug("spatial index rebuilt", "points", len(s.ids), "version", s.version)

	return s.tree, nil
}

// snapshot decodes every stored triple into a flat float32 buffer in
// slot order, fanning out across cores for large stores. The workers
// only read state the caller already promised not to mutate mid-call.
func (s *PointStore) snapshot() ([]float32, error) {
	n := len(s.ids)
	buf := make([]float32, 3*n)
	q := quantization.NewQuantizer(s.bounds)

	decode := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			buf[3*i], buf[3*i+1], buf[3*i+2] = q.Decode(s.coords[3*i], s.coords[3*i+1], s.coords[3*i+2])
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if n < parallelSnapshotThreshold || workers < 2 {
		decode(0, n)
		return buf, nil
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		g.Go(func() error {
			decode(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buf, nil
}
