package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultMaxCacheSize is the recommended read-cache bound, in the unit
// returned by the configured Meter.
const DefaultMaxCacheSize = 16 * 1024

// AddResultKind discriminates the outcome of TrackingCopy.Add.
type AddResultKind uint8

const (
	AddSuccess AddResultKind = iota
	AddKeyNotFound
	AddTypeMismatch
)

// AddResult is returned by TrackingCopy.Add.
type AddResult struct {
	Kind         AddResultKind
	MissingKey   Key
	TypeMismatch TypeMismatch
}

// TrackingCopy is a per-deploy, read-through write-behind overlay atop a
// StateReader-backed global state. It is single-owner, single-threaded;
// nothing in it needs to be safe for concurrent use.
type TrackingCopy struct {
	reader     StateReader
	cache      *TrackingCopyCache
	ops        map[Key]Op
	transforms map[Key]Transform
}

// NewTrackingCopy builds a TrackingCopy bound to reader, with a
// HeapSizeMeter-weighed read cache sized at DefaultMaxCacheSize.
func NewTrackingCopy(reader StateReader) *TrackingCopy {
	return NewTrackingCopyWithCache(reader, DefaultMaxCacheSize, HeapSizeMeter{})
}

// NewTrackingCopyWithCache builds a TrackingCopy with an explicit cache
// bound and meter — e.g. CountMeter{} in tests that reason about entry
// counts rather than byte weight.
func NewTrackingCopyWithCache(reader StateReader, maxCacheSize int, meter Meter) *TrackingCopy {
	return &TrackingCopy{
		reader:     reader,
		cache:      NewTrackingCopyCache(maxCacheSize, meter),
		ops:        make(map[Key]Op),
		transforms: make(map[Key]Transform),
	}
}

// get is the internal read-through path: mutation tier, then read tier
// (refreshing it), then the backing reader (populating the read tier on
// hit). It never touches ops/transforms.
func (tc *TrackingCopy) get(cid CorrelationID, k Key) (Value, bool, error) {
	if v, ok := tc.cache.Get(k); ok {
		return v, true, nil
	}
	v, found, err := tc.reader.Read(cid, k)
	if err != nil {
		logrus.Warnf("trackingcopy: reader error for %s: %v", k, err)
		return Value{}, false, err
	}
	if !found {
		return Value{}, false, nil
	}
	tc.cache.InsertRead(k, v)
	return v, true, nil
}

// Read normalizes k, resolves its current value, and — only on a hit —
// joins Op::Read and Transform::Identity into the logs.
func (tc *TrackingCopy) Read(cid CorrelationID, k Validated[Key]) (Value, bool, error) {
	nk := k.Get().Normalize()
	v, found, err := tc.get(cid, nk)
	if err != nil {
		return Value{}, false, err
	}
	if !found {
		return Value{}, false, nil
	}
	recordOp(tc.ops, nk, OpRead)
	_ = recordTransform(tc.transforms, nk, IdentityTransform())
	return v, true, nil
}

// Write normalizes k, stages v in the mutation tier, and joins Op::Write
// and Transform::Write(v) into the logs. Write is infallible.
func (tc *TrackingCopy) Write(k Validated[Key], v Validated[Value]) {
	nk := k.Get().Normalize()
	nv := v.Get()
	tc.cache.InsertWrite(nk, nv)
	recordOp(tc.ops, nk, OpWrite)
	_ = recordTransform(tc.transforms, nk, WriteTransform(nv))
}

// Add normalizes k, derives a transform from the addend's type, and applies
// it to the key's current value. On success the mutation tier and logs are
// updated together; on any failure (missing key or type mismatch) neither
// is touched.
func (tc *TrackingCopy) Add(cid CorrelationID, k Validated[Key], v Validated[Value]) (AddResult, error) {
	nk := k.Get().Normalize()
	curr, found, err := tc.get(cid, nk)
	if err != nil {
		return AddResult{}, err
	}
	if !found {
		return AddResult{Kind: AddKeyNotFound, MissingKey: nk}, nil
	}

	t, err := deriveAddTransform(v.Get())
	if err != nil {
		if mismatch, ok := err.(TypeMismatch); ok {
			return AddResult{Kind: AddTypeMismatch, TypeMismatch: mismatch}, nil
		}
		return AddResult{}, err
	}

	newValue, err := Apply(t, curr)
	if err != nil {
		if mismatch, ok := err.(TypeMismatch); ok {
			return AddResult{Kind: AddTypeMismatch, TypeMismatch: mismatch}, nil
		}
		return AddResult{}, err
	}

	if err := recordTransform(tc.transforms, nk, t); err != nil {
		if mismatch, ok := err.(TypeMismatch); ok {
			return AddResult{Kind: AddTypeMismatch, TypeMismatch: mismatch}, nil
		}
		return AddResult{}, err
	}
	tc.cache.InsertWrite(nk, newValue)
	recordOp(tc.ops, nk, OpAdd)
	return AddResult{Kind: AddSuccess}, nil
}

// Effect snapshots the current op and transform logs. It is pure and
// non-destructive — it may be called repeatedly as the deploy continues.
func (tc *TrackingCopy) Effect() ExecutionEffect {
	return newExecutionEffect(tc.ops, tc.transforms)
}

// IsEmpty reports whether the overlay's cache and its op/transform logs
// hold no entries — used by
// tests asserting a freshly constructed TrackingCopy touched nothing.
func (tc *TrackingCopy) IsEmpty() bool {
	return tc.cache.IsEmpty() && len(tc.ops) == 0 && len(tc.transforms) == 0
}

func (r AddResult) String() string {
	switch r.Kind {
	case AddSuccess:
		return "Success"
	case AddKeyNotFound:
		return fmt.Sprintf("KeyNotFound(%s)", r.MissingKey)
	case AddTypeMismatch:
		return fmt.Sprintf("TypeMismatch(%s)", r.TypeMismatch)
	default:
		return "Unknown"
	}
}
