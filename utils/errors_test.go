package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClasses(t *testing.T) {
	cases := map[int]error{
		1: FileErrorf("missing %s", "RHO.txt"),
		2: DataErrorf("input count unequal"),
		3: CalcErrorf("non-physical state"),
		4: ArgsErrorf("unknown scheme"),
		5: ResourceErrorf("out of memory"),
	}
	for code, err := range cases {
		assert.Equal(t, code, ExitCode(err))
	}
	assert.Equal(t, 0, ExitCode(nil))
	// Unclassed errors default to the calculation class
	assert.Equal(t, 3, ExitCode(fmt.Errorf("plain")))
}

func TestErrorWrapping(t *testing.T) {
	// The class survives wrapping through call layers
	inner := CalcErrorf("vacuum formation")
	outer := fmt.Errorf("step 17: %w", inner)
	assert.Equal(t, 3, ExitCode(outer))
	assert.Contains(t, inner.Error(), "calculation error")
}
