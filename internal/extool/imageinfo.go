package extool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Inspector reports the pixel dimensions of an image file. Implementations
// wrap external utilities; tests substitute fakes.
type Inspector interface {
	Dimensions(ctx context.Context, path string) (width, height float64, err error)
	Name() string
}

// Supported inspector backend names.
const (
	BackendIdentify = "identify"
	BackendExifTool = "exiftool"
)

// NewInspector returns the inspector for the named backend. An unsupported
// name is a configuration error.
func NewInspector(backend string, cfg Config) (Inspector, error) {
	switch backend {
	case BackendIdentify:
		return identifyInspector{cfg: cfg.withDefaults()}, nil
	case BackendExifTool:
		return exiftoolInspector{cfg: cfg.withDefaults()}, nil
	default:
		return nil, fmt.Errorf("unsupported image inspector %q (want %s or %s)",
			backend, BackendIdentify, BackendExifTool)
	}
}

// identifyInspector shells out to ImageMagick's identify.
type identifyInspector struct{ cfg Config }

func (identifyInspector) Name() string { return BackendIdentify }

func (in identifyInspector) Dimensions(ctx context.Context, path string) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, in.cfg.InspectorTimeout)
	defer cancel()

	// First frame only; animated images report one line per frame otherwise.
	stdout, stderr, err := runCapture(ctx, "", nil, "identify", "-format", "%w %h", path+"[0]")
	if err != nil {
		return 0, 0, classify("identify", err, ctx, stderr)
	}
	return ParseDimensions(stdout)
}

// exiftoolInspector shells out to exiftool.
type exiftoolInspector struct{ cfg Config }

func (exiftoolInspector) Name() string { return BackendExifTool }

func (in exiftoolInspector) Dimensions(ctx context.Context, path string) (float64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, in.cfg.InspectorTimeout)
	defer cancel()

	stdout, stderr, err := runCapture(ctx, "", nil, "exiftool", "-s3", "-ImageWidth", "-ImageHeight", path)
	if err != nil {
		return 0, 0, classify("exiftool", err, ctx, stderr)
	}
	return ParseDimensions(stdout)
}

// ParseDimensions reads the first two numeric fields from inspector output,
// tolerating either "W H" on one line or one value per line.
func ParseDimensions(out string) (float64, float64, error) {
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("inspector output %q: want width and height", strings.TrimSpace(out))
	}
	w, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("inspector width %q: %w", fields[0], err)
	}
	h, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("inspector height %q: %w", fields[1], err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("inspector reported degenerate dimensions %gx%g", w, h)
	}
	return w, h, nil
}
