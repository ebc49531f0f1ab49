package nvtt

import "errors"

// Sentinel errors for the fallible operations. Upstream signals these as
// boolean failures; the Go port returns typed errors instead so callers can
// distinguish causes with errors.Is.
var (
	// ErrUnsupportedFormat is returned by SetImage2D for formats other than
	// BC1..BC5, and by SetImage for an unknown input format.
	ErrUnsupportedFormat = errors.New("nvtt: unsupported format")

	// ErrShapeMismatch is returned by cross-surface operations (CopyChannel,
	// AddChannel, error metrics) when the two surfaces do not share the same
	// width, height and depth.
	ErrShapeMismatch = errors.New("nvtt: surface shape mismatch")

	// ErrInvalidChannel is returned for channel indices outside [0, 3].
	ErrInvalidChannel = errors.New("nvtt: invalid channel index")

	// ErrShortBuffer is returned by ingestion when the supplied pixel data is
	// smaller than the declared image extents require.
	ErrShortBuffer = errors.New("nvtt: input buffer too short")

	// ErrNullSurface is returned by operations that need pixel data to exist,
	// such as Save.
	ErrNullSurface = errors.New("nvtt: null surface")
)
