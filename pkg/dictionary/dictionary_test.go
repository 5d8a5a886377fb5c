package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWrapperObject(t *testing.T) {
	path := writeFile(t, "words.json", `{
		"words": [
			{"word": "你好", "pinyin": "ni3 hao3", "definitions": ["hello"], "hsk": 1},
			{"word": "银行", "traditional": "銀行", "pinyin": "yin2 hang2", "definitions": ["bank"]}
		]
	}`)
	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len()) // traditional form filed as its own key

	senses := d.Lookup("你好")
	require.Len(t, senses, 1)
	assert.Equal(t, "ni3 hao3", senses[0].PinyinRaw)
	assert.Equal(t, 1, senses[0].HSKLevel)

	assert.NotEmpty(t, d.Lookup("銀行"))
	assert.Equal(t, 2, d.MaxHeadwordLen())
}

func TestLoadBareArray(t *testing.T) {
	path := writeFile(t, "words.json", `[
		{"word": "好", "pinyin": "hao3", "definitions": ["good"]},
		{"word": "好", "pinyin": "hao4", "definitions": ["to like"]}
	]`)
	d, err := Load(path)
	require.NoError(t, err)
	senses := d.Lookup("好")
	require.Len(t, senses, 2) // homograph senses keep separate entries
	assert.Equal(t, "hao3", senses[0].PinyinRaw)
	assert.Equal(t, "hao4", senses[1].PinyinRaw)
}

func TestLoadOrEmptyDegrades(t *testing.T) {
	d := LoadOrEmpty(filepath.Join(t.TempDir(), "absent.json"), zap.NewNop())
	require.NotNil(t, d)
	assert.Zero(t, d.Len())
	assert.Empty(t, d.Lookup("你好"))

	bad := writeFile(t, "bad.json", `{not json`)
	d2 := LoadOrEmpty(bad, zap.NewNop())
	assert.Zero(t, d2.Len())
}

func TestLoadCharIndex(t *testing.T) {
	path := writeFile(t, "chars.json", `{
		"characters": [
			{"character": "好", "radical": "女", "strokes": 6, "components": ["女", "子"]}
		],
		"radicals": {"女": "woman"}
	}`)
	idx, err := LoadCharIndex(path)
	require.NoError(t, err)

	e, ok := idx.Char("好")
	require.True(t, ok)
	assert.Equal(t, "女", e.Radical)
	assert.Equal(t, 6, e.Strokes)
	assert.Equal(t, "woman", idx.RadicalMeaning("女"))
	assert.Empty(t, idx.RadicalMeaning("口"))

	_, ok = idx.Char("馬")
	assert.False(t, ok)
}

func TestLoadCharIndexBareArray(t *testing.T) {
	path := writeFile(t, "chars.json", `[{"character": "口", "radical": "口", "strokes": 3}]`)
	idx, err := LoadCharIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
}
