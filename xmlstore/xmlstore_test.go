package xmlstore

import (
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	Key   string `xml:"key,attr" validate:"required"`
	Value string `xml:",chardata"`
}

type testDoc struct {
	XMLName xml.Name   `xml:"items"`
	Items   []testItem `xml:"item" validate:"dive"`
}

func (testDoc) Schema() string { return "test-items" }

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "items.xml")

	doc := &testDoc{Items: []testItem{{Key: "a", Value: "one"}, {Key: "b", Value: "two & three"}}}
	require.NoError(t, Save(path, doc))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))

	var loaded testDoc
	require.NoError(t, Load(path, &loaded))
	assert.Equal(t, doc.Items, loaded.Items)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissing(t *testing.T) {
	var doc testDoc
	err := Load(filepath.Join(t.TempDir(), "nope.xml"), &doc)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"garbage", "this is not xml <<", ErrMalformed},
		{"wrong root", `<things><item key="a"/></things>`, ErrMalformed},
		{"missing required attr", `<items><item>v</item></items>`, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.xml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			var doc testDoc
			err := Load(path, &doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSaveRefusesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.xml")
	err := Save(path, &testDoc{Items: []testItem{{Value: "no key"}}})
	assert.True(t, errors.Is(err, ErrInvalid))

	_, err = os.Stat(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
