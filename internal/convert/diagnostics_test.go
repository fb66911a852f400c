// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticsWarnings(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   []string
	}{
		{name: "empty", stderr: "", want: nil},
		{name: "noise only", stderr: "Defaulting to markdown\n\n  \n", want: nil},
		{
			name:   "keeps marked lines and trims",
			stderr: "  [WARNING] Could not fetch resource img.png  \nprogress 50%\n[WARNING] Duplicate note reference '1'\n",
			want: []string{
				"[WARNING] Could not fetch resource img.png",
				"[WARNING] Duplicate note reference '1'",
			},
		},
		{name: "windows line endings", stderr: "[WARNING] a\r\n[INFO] b\r\n", want: []string{"[WARNING] a"}},
		{name: "lowercase marker is not a warning", stderr: "[warning] quiet\n", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDiagnostics(tt.stderr)
			assert.Equal(t, tt.want, d.Warnings())
			assert.Equal(t, len(tt.want) > 0, d.HasWarnings())
		})
	}
}

func TestDiagnosticsNotice(t *testing.T) {
	t.Run("no warnings", func(t *testing.T) {
		assert.Empty(t, ParseDiagnostics("just noise\n").Notice())
	})

	t.Run("math warning gets math explanation", func(t *testing.T) {
		d := ParseDiagnostics("[WARNING] Could not convert TeX math \\frac{a}{, rendering as TeX\n")
		n := d.Notice()
		assert.Contains(t, n, "math expressions")
		assert.Contains(t, n, "\\frac{a}{")
	})

	t.Run("generic warning", func(t *testing.T) {
		d := ParseDiagnostics("[WARNING] Could not fetch resource x.png\nnoise\n")
		n := d.Notice()
		assert.Contains(t, n, "Some problems were detected")
		assert.Contains(t, n, "x.png")
		assert.NotContains(t, n, "noise")
	})
}
