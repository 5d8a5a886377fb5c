package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/charinfo"
	"github.com/weiyin/cidian/pkg/dictionary"
	"github.com/weiyin/cidian/pkg/lookup"
	"github.com/weiyin/cidian/pkg/segment"
	"github.com/weiyin/cidian/pkg/vocab"
)

func TestSplitSentences(t *testing.T) {
	text := "我喝茶。你呢？\nJust English here.\n他走了！"
	got := SplitSentences(text)
	assert.Equal(t, []string{"我喝茶。", "你呢？", "他走了！"}, got)
}

func TestSplitSentencesTrailingFragment(t *testing.T) {
	got := SplitSentences("没有句号的句子")
	assert.Equal(t, []string{"没有句号的句子"}, got)
	assert.Empty(t, SplitSentences("   \n\n"))
}

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(3, 4)
	ctx := context.Background()
	pool.Start(ctx)

	var ran int64
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(ctx, func(context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		}))
	}
	pool.Close()
	assert.EqualValues(t, 20, ran)
}

func TestWorkerPoolCloseWithBlockedSubmit(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	ctx := context.Background()
	pool.Start(ctx)

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, pool.Submit(ctx, func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started
	// The worker is occupied; this fills the single queue slot.
	require.NoError(t, pool.Submit(ctx, func(context.Context) error { return nil }))

	// This submit blocks on the full queue until the worker drains a slot.
	// Closing concurrently must never reach "send on closed channel".
	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("submit panicked: %v", r)
			}
		}()
		result <- pool.Submit(ctx, func(context.Context) error { return nil })
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)
	pool.Close()

	err := <-result
	if err != nil {
		assert.ErrorIs(t, err, ErrPoolClosed)
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(1, 1)
	pool.Start(context.Background())
	pool.Close()
	err := pool.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestIngestSavesVocabulary(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, vocab.InitDB(db))
	t.Cleanup(func() { db.Close() })

	dict := dictionary.NewDict([]dictionary.Entry{
		{Word: "我", PinyinRaw: "wo3", Definitions: []string{"I"}},
		{Word: "喝", PinyinRaw: "he1", Definitions: []string{"to drink"}},
		{Word: "茶", PinyinRaw: "cha2", Definitions: []string{"tea"}},
	})
	chars := dictionary.NewCharIndex(nil, nil)
	store := vocab.NewStore(db, zap.NewNop())
	p := lookup.New(segment.New(dict, 16), charinfo.NewResolver(chars), store, nil, zap.NewNop())

	ig := NewIngester(p, zap.NewNop())
	ig.Workers = 2
	stats, err := ig.Ingest(context.Background(), "https://example.com/article", "我喝茶。我喝茶。")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Sentences)
	assert.EqualValues(t, 6, stats.Segments)
	assert.Zero(t, stats.Failed)

	e, err := store.Get(context.Background(), "茶")
	require.NoError(t, err)
	assert.EqualValues(t, 2, e.LookupCount)
	require.Len(t, e.Contexts, 1) // identical sentence deduplicated
	assert.Equal(t, "https://example.com/article", e.Contexts[0].SourceURL)
}
