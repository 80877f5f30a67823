// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	cp1251, err := charmap.Windows1251.NewEncoder().String("Температура: 20°C")
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{
			name: "utf-8 by default",
			data: []byte("Температура: 20°C"),
			want: "Температура: 20°C",
		},
		{
			name:     "strips byte order mark",
			data:     append([]byte{0xEF, 0xBB, 0xBF}, "temp: 5"...),
			encoding: "UTF-8",
			want:     "temp: 5",
		},
		{
			name:     "decodes windows-1251",
			data:     []byte(cp1251),
			encoding: "windows-1251",
			want:     "Температура: 20°C",
		},
		{
			name: "empty file",
			data: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "input.txt", tt.data)
			got, err := ReadFile(path, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrRead)
}

func TestReadFileFailures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		encoding string
	}{
		{
			name: "directory",
			path: dir,
		},
		{
			name: "invalid utf-8",
			path: writeFile(t, dir, "latin1.txt", []byte{'t', ':', ' ', '5', 0xFF, 0xFE}),
		},
		{
			name:     "unknown encoding",
			path:     writeFile(t, dir, "plain.txt", []byte("t: 5")),
			encoding: "no-such-charset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(tt.path, tt.encoding)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRead)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDecodeReader(t *testing.T) {
	koi8, err := charmap.KOI8R.NewEncoder().String("ветер 3 м/с")
	require.NoError(t, err)

	got, err := Decode(strings.NewReader(koi8), "koi8-r")
	require.NoError(t, err)
	assert.Equal(t, "ветер 3 м/с", got)
}
