package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResumeCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.cache")
	cache := ResumeCache{
		Characters: []CachedCharacter{
			{GUID: 0x50000001, Name: "Buddy"},
			{GUID: 0x50000002, Name: "Hero"},
		},
		SelectedGUID: 0x50000001,
	}

	require.NoError(t, SaveResumeCache(path, "hunter2", cache))

	loaded, err := LoadResumeCache(path, "hunter2")
	require.NoError(t, err)
	require.Equal(t, cache, *loaded)
}

func TestResumeCacheWrongPasswordFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.cache")
	require.NoError(t, SaveResumeCache(path, "hunter2", ResumeCache{SelectedGUID: 1}))

	_, err := LoadResumeCache(path, "wrong")
	require.Error(t, err)
}
