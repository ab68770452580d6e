package bookmark_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism/internal/bookmark"
	"prism/internal/bookmark/bookmarktest"
)

func TestResolve_EncodedPaths(t *testing.T) {
	for _, p := range []string{
		"/Applications/Safari.app",
		"/Users/tester/Applications/Chrome Apps.localized/Docs.app",
		"/System/Library/CoreServices/Finder.app",
	} {
		got, err := bookmark.Resolve(bookmarktest.Encode(p))
		require.NoError(t, err, p)
		assert.Equal(t, p, got)
	}
}
