package static

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {
	sub, err := FS()
	require.NoError(t, err)

	css, err := fs.ReadFile(sub, "app.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), "@keyframes float-up")
}
