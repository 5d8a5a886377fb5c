package lookup

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/charinfo"
	"github.com/weiyin/cidian/pkg/dictionary"
	"github.com/weiyin/cidian/pkg/segment"
	"github.com/weiyin/cidian/pkg/vocab"
)

func testPipeline(t *testing.T) (*Pipeline, *vocab.Store, *vocab.MemReplica) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, vocab.InitDB(db))
	t.Cleanup(func() { db.Close() })

	dict := dictionary.NewDict([]dictionary.Entry{
		{Word: "你好", PinyinRaw: "ni3 hao3", Definitions: []string{"hello"}, HSKLevel: 1},
		{Word: "好", PinyinRaw: "hao3", Definitions: []string{"good"}},
		{Word: "妈", PinyinRaw: "ma1", Definitions: []string{"mother"}},
	})
	chars := dictionary.NewCharIndex([]dictionary.CharEntry{
		{Character: "你", Radical: "亻", Strokes: 7, Components: []string{"亻", "尔"}},
		{Character: "好", Radical: "女", Strokes: 6, Components: []string{"女", "子"}},
		{Character: "妈", Radical: "女", Strokes: 6, Components: []string{"女", "马"}},
	}, map[string]string{"女": "woman"})

	store := vocab.NewStore(db, zap.NewNop())
	replica := vocab.NewMemReplica()
	syncer := vocab.NewSyncer(store, replica, zap.NewNop())
	p := New(segment.New(dict, 16), charinfo.NewResolver(chars), store, syncer, zap.NewNop())
	return p, store, replica
}

func TestLookupAssemblesResult(t *testing.T) {
	p, _, _ := testPipeline(t)
	ctx := context.Background()

	res, err := p.Lookup(ctx, Request{Text: " 你好! ", Context: "你好世界"})
	require.NoError(t, err)
	assert.Equal(t, "你好", res.OriginalText)
	require.Len(t, res.Segments, 1)

	seg := res.Segments[0]
	assert.Equal(t, "nǐ hǎo", seg.Pinyin)
	assert.Equal(t, "nǐ hǎo", res.FullPinyin)
	assert.Equal(t, []string{"hello"}, seg.Definitions)
	assert.Equal(t, 1, seg.HSKLevel)
	require.Len(t, seg.Characters, 2)
	assert.Equal(t, "女", seg.Characters[1].Radical)
	assert.Equal(t, "woman", seg.Characters[1].RadicalMeaning)
}

func TestLookupSavesToStore(t *testing.T) {
	p, store, replica := testPipeline(t)
	ctx := context.Background()

	_, err := p.Lookup(ctx, Request{Text: "你好", Context: "朋友说你好。", SourceURL: "https://example.com/a"})
	require.NoError(t, err)

	e, err := store.Get(ctx, "你好")
	require.NoError(t, err)
	assert.EqualValues(t, 1, e.LookupCount)
	require.Len(t, e.Contexts, 1)
	assert.Equal(t, "https://example.com/a", e.Contexts[0].SourceURL)

	records, err := replica.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, records, "你好")
}

func TestLookupSkipSave(t *testing.T) {
	p, store, replica := testPipeline(t)
	ctx := context.Background()

	_, err := p.Lookup(ctx, Request{Text: "你好", SkipSave: true})
	require.NoError(t, err)

	_, err = store.Get(ctx, "你好")
	assert.ErrorIs(t, err, vocab.ErrNotFound)
	records, err := replica.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLookupMarksKnownOnSecondSight(t *testing.T) {
	p, _, _ := testPipeline(t)
	ctx := context.Background()

	first, err := p.Lookup(ctx, Request{Text: "你好"})
	require.NoError(t, err)
	assert.False(t, first.Segments[0].IsAlreadyKnown)

	second, err := p.Lookup(ctx, Request{Text: "你好"})
	require.NoError(t, err)
	assert.True(t, second.Segments[0].IsAlreadyKnown)
}

func TestLookupUnknownCharacterPlaceholder(t *testing.T) {
	p, store, _ := testPipeline(t)
	ctx := context.Background()

	res, err := p.Lookup(ctx, Request{Text: "好馬"})
	require.NoError(t, err)
	require.Len(t, res.Segments, 2)
	unknown := res.Segments[1]
	assert.True(t, unknown.Unknown)
	assert.Equal(t, []string{segment.NoDefinitionFound}, unknown.Definitions)

	// placeholder glosses are not persisted as definitions
	e, err := store.Get(ctx, "馬")
	require.NoError(t, err)
	assert.Empty(t, e.Definitions)
}

func TestLookupEmptyInput(t *testing.T) {
	p, _, _ := testPipeline(t)
	res, err := p.Lookup(context.Background(), Request{Text: "nothing chinese"})
	require.NoError(t, err)
	assert.Empty(t, res.Segments)
	assert.Empty(t, res.FullPinyin)
}

func TestLookupComponentOccurrences(t *testing.T) {
	p, _, _ := testPipeline(t)
	ctx := context.Background()

	_, err := p.Lookup(ctx, Request{Text: "好"})
	require.NoError(t, err)
	res, err := p.Lookup(ctx, Request{Text: "妈"})
	require.NoError(t, err)

	// 好 was seen earlier under the 女 component; 妈 itself is excluded.
	assert.Contains(t, res.ComponentOccurrences["女"], "好")
	assert.NotContains(t, res.ComponentOccurrences["女"], "妈")
}
