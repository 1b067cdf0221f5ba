//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/mandel"
)

//go:embed shaders/escape.wgsl
var escapeShaderSource string

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// compileEscapeShader translates the escape-time WGSL program to SPIR-V
// words. Diagnostics are returned verbatim in a *mandel.ShaderBuildError.
func compileEscapeShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(escapeShaderSource)
	if err != nil {
		return nil, &mandel.ShaderBuildError{Stage: "wgsl", Log: err.Error()}
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, &mandel.ShaderBuildError{
			Stage: "spirv",
			Log:   fmt.Sprintf("module is %d bytes, not a whole number of words", len(spirvBytes)),
		}
	}

	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, &mandel.ShaderBuildError{
			Stage: "spirv",
			Log:   fmt.Sprintf("invalid magic 0x%08X, want 0x%08X", words[0], spirvMagic),
		}
	}
	return words, nil
}
