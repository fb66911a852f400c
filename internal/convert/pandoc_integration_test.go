// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/omvandlare/internal/engine"
	"github.com/pdiddy/omvandlare/pkg/types"
)

// systemPandoc returns a converter backed by the pandoc on PATH, skipping
// the test when there is none.
func systemPandoc(t *testing.T) *Pandoc {
	t.Helper()
	loc := engine.Locate(types.EngineConfig{Name: types.DefaultEngineName}, nil)
	if !loc.Found() {
		t.Skip("pandoc not installed")
	}
	return NewPandoc(engine.NewRunner(loc, 0), nil)
}

func TestPandocRoundTrip(t *testing.T) {
	p := systemPandoc(t)
	ctx := context.Background()

	html, err := MarkdownToHTML(ctx, p, "# Test\n\nThis is **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>bold</strong>")

	md, err := HTMLToMarkdown(ctx, p, html)
	require.NoError(t, err)
	assert.Contains(t, md, "# Test")
	assert.Contains(t, md, "**bold**")
}

func TestPandocDocxExport(t *testing.T) {
	p := systemPandoc(t)
	out := filepath.Join(t.TempDir(), "test.docx")

	got, _, err := ConvertText(context.Background(), p,
		"# Test Document\n\nThis is a **test** with some *emphasis*.\n\n- Item 1\n- Item 2", "docx", "markdown", out)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPandocVersionAndFormats(t *testing.T) {
	p := systemPandoc(t)
	ctx := context.Background()

	v, err := p.Version(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "pandoc"), v)

	f, err := p.Formats(ctx)
	require.NoError(t, err)
	assert.True(t, f.SupportsInput("markdown"))
	assert.True(t, f.SupportsOutput("docx"))
}

func TestPandocUnknownWriter(t *testing.T) {
	p := systemPandoc(t)
	_, _, err := ConvertText(context.Background(), p, "# x", "notarealformat", "markdown", "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
