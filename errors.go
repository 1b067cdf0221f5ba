package mandel

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable reports that no device able to evaluate pixels
// could be acquired: no graphics adapter, no window, or an unknown device
// name. It is fatal to the session and must be shown to the user.
var ErrCapabilityUnavailable = errors.New("mandel: graphics capability unavailable")

// ErrShaderBuild is the sentinel matched by every *ShaderBuildError.
var ErrShaderBuild = errors.New("mandel: shader build failed")

// ErrInvalidParameters reports RenderParameters that violate their
// invariants. The controller never produces such parameters; the error
// guards hand-built ones.
var ErrInvalidParameters = errors.New("mandel: invalid render parameters")

// ShaderBuildError is returned when the coloring program fails to compile
// or link. Log holds the compiler diagnostic text verbatim.
type ShaderBuildError struct {
	// Stage names the toolchain step that failed ("wgsl", "spirv", "kage", ...).
	Stage string

	// Log is the diagnostic output of the failing step.
	Log string
}

func (e *ShaderBuildError) Error() string {
	return fmt.Sprintf("mandel: %s shader build failed: %s", e.Stage, e.Log)
}

// Unwrap lets errors.Is(err, ErrShaderBuild) match.
func (e *ShaderBuildError) Unwrap() error { return ErrShaderBuild }
