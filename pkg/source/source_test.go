package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySources(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key.bin")
	require.NoError(t, os.WriteFile(keyFile, []byte("file key\n\x00"), 0600))

	prompted := func(string) ([]byte, error) { return []byte("typed"), nil }

	tests := []struct {
		name string
		opts KeyOptions
		want []byte
	}{
		{"empty", KeyOptions{}, []byte{}},
		{"inline", KeyOptions{Inline: "alpha", File: keyFile}, []byte("alpha")},
		{"file verbatim", KeyOptions{File: keyFile, Prompt: true}, []byte("file key\n\x00")},
		{"prompt", KeyOptions{Prompt: true, Prompter: prompted}, []byte("typed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyErrors(t *testing.T) {
	_, err := Key(KeyOptions{File: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	boom := errors.New("boom")
	_, err = Key(KeyOptions{Prompt: true, Prompter: func(string) ([]byte, error) { return nil, boom }})
	assert.ErrorIs(t, err, boom)
}

func TestKeyNormalize(t *testing.T) {
	decomposed := "cafe\u0301"

	raw, err := Key(KeyOptions{Inline: decomposed})
	require.NoError(t, err)
	assert.Equal(t, []byte(decomposed), raw)

	nfc, err := Key(KeyOptions{Inline: decomposed, Normalize: true})
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\u00e9"), nfc)
}

func TestMessage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file"), 0600))

	inline, empty := "inline", ""

	got, err := Message(&inline, file)
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), got)

	got, err = Message(&empty, file)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Message(nil, file)
	require.NoError(t, err)
	assert.Equal(t, []byte("from file"), got)

	_, err = Message(nil, "")
	assert.ErrorIs(t, err, ErrNoMessage)
}
