package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildPath(t *testing.T) {
	assert.Equal(t, "/a/b", childPath("/a", "b"))
	assert.Equal(t, "/b", childPath("/", "b"))
	assert.Equal(t, "rel/b", childPath("rel", "b"))
}
