// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omvandlare/pkg/types"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := openStore(t)
	_, err := os.Stat(filepath.Join(dir, "history.db"))
	assert.NoError(t, err)
}

func TestOpenCreatesNestedDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.DirExists(t, dir)
}

func TestRecordFillsDefaults(t *testing.T) {
	s, _ := openStore(t)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec, err := s.Record(context.Background(), types.ExportRecord{
		Path: "/tmp/converted_document_20260314_150926.docx",
		From: "markdown",
		To:   "docx",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, fixed, rec.CreatedAt)

	got, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestRecentOrderAndLimit(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.docx", "b.docx", "c.docx"} {
		_, err := s.Record(ctx, types.ExportRecord{
			Path:      "/out/" + name,
			From:      "markdown",
			To:        "docx",
			Bytes:     int64(100 * (i + 1)),
			Warnings:  i,
			Opened:    i%2 == 0,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/out/c.docx", got[0].Path)
	assert.Equal(t, "/out/b.docx", got[1].Path)
	assert.Equal(t, 2, got[0].Warnings)
	assert.True(t, got[0].Opened)
	assert.False(t, got[1].Opened)
	assert.Equal(t, int64(300), got[0].Bytes)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecentOrderWithinOneSecond(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	for _, r := range []struct {
		path   string
		offset time.Duration
	}{
		{"/out/older.docx", 120 * time.Millisecond},
		{"/out/newer.docx", 123 * time.Millisecond},
	} {
		_, err := s.Record(ctx, types.ExportRecord{
			Path:      r.path,
			From:      "markdown",
			To:        "docx",
			CreatedAt: base.Add(r.offset),
		})
		require.NoError(t, err)
	}

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/out/newer.docx", got[0].Path)
	assert.Equal(t, "/out/older.docx", got[1].Path)
	assert.Equal(t, base.Add(123*time.Millisecond), got[0].CreatedAt)
}

func TestRecentEmpty(t *testing.T) {
	s, _ := openStore(t)
	got, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteFormats(t *testing.T) {
	records := []types.ExportRecord{{
		ID:        "id-1",
		Path:      "/out/a.docx",
		From:      "markdown",
		To:        "docx",
		Bytes:     42,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	var jb bytes.Buffer
	require.NoError(t, WriteJSON(&jb, records))
	var fromJSON []types.ExportRecord
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	assert.Equal(t, records, fromJSON)

	var yb bytes.Buffer
	require.NoError(t, WriteYAML(&yb, records))
	assert.Contains(t, yb.String(), "path: /out/a.docx")
	var fromYAML []types.ExportRecord
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	assert.Equal(t, "id-1", fromYAML[0].ID)
}
