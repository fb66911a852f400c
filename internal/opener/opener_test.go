// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package opener

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStarter struct {
	name string
	args []string
	err  error
}

func (r *recordingStarter) Run(_ context.Context, name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

func TestOpenDispatch(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{goos: "windows", wantName: "rundll32", wantArgs: []string{"url.dll,FileProtocolHandler", "/tmp/a.docx"}},
		{goos: "darwin", wantName: "open", wantArgs: []string{"/tmp/a.docx"}},
		{goos: "linux", wantName: "xdg-open", wantArgs: []string{"/tmp/a.docx"}},
		{goos: "freebsd", wantName: "xdg-open", wantArgs: []string{"/tmp/a.docx"}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rs := &recordingStarter{}
			o := &Opener{goos: tt.goos, run: rs}

			require.NoError(t, o.Open(context.Background(), "/tmp/a.docx"))
			assert.Equal(t, tt.wantName, rs.name)
			assert.Equal(t, tt.wantArgs, rs.args)
		})
	}
}

func TestOpenFailure(t *testing.T) {
	boom := errors.New("no handler")
	o := &Opener{goos: "linux", run: &recordingStarter{err: boom}}

	err := o.Open(context.Background(), "/tmp/a.docx")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "xdg-open")
}
