// Package quantization provides bounds-relative scalar quantization for
// memory-efficient coordinate storage.
//
// Each float32 coordinate is linearly mapped against the per-axis
// min/max of a Bounds into a signed 16-bit word, compressing a triple
// from 12 bytes to 6. The codec is lossy: for a fixed Bounds, a
// round-tripped value differs from the original by at most half a
// quantization step, (max-min)/32767/2, per axis. Stored words are only
// meaningful against the exact Bounds they were encoded with; callers
// that widen their bounds must re-encode existing words.
package quantization
