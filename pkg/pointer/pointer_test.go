// Copyright (c) 2026 marsAI. All rights reserved.

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marsai/festival/pkg/pointer"
)

func TestFallback(t *testing.T) {
	assert.Equal(t, "kept", pointer.Fallback(nil, "kept"))
	assert.Equal(t, "new", pointer.Fallback(pointer.To("new"), "kept"))
	assert.Equal(t, 0, pointer.Fallback(pointer.To(0), 2026))
}
