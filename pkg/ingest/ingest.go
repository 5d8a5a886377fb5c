// Package ingest feeds whole documents through the lookup pipeline: sentence
// splitting, concurrent lookups, per-sentence context attribution.
package ingest

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/lookup"
	"github.com/weiyin/cidian/pkg/segment"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Sentences int64
	Segments  int64
	Unknown   int64
	Failed    int64
}

// Ingester drives the pipeline over extracted article text.
type Ingester struct {
	Pipeline *lookup.Pipeline
	Workers  int
	Logger   *zap.Logger
}

// NewIngester creates an Ingester with a default worker count.
func NewIngester(p *lookup.Pipeline, log *zap.Logger) *Ingester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{Pipeline: p, Workers: 4, Logger: log}
}

// Ingest splits text into sentences and looks each one up concurrently,
// attributing the sentence itself as the saved context. Individual sentence
// failures are logged and counted, not fatal; per-word save atomicity is the
// store's concern.
func (ig *Ingester) Ingest(ctx context.Context, sourceURL, text string) (Stats, error) {
	sentences := SplitSentences(text)

	var stats Stats
	pool := NewWorkerPool(ig.Workers, ig.Workers*2)
	pool.Start(ctx)

	for _, sentence := range sentences {
		sentence := sentence
		err := pool.Submit(ctx, func(jctx context.Context) error {
			res, err := ig.Pipeline.Lookup(jctx, lookup.Request{
				Text:      sentence,
				Context:   sentence,
				SourceURL: sourceURL,
			})
			if err != nil {
				atomic.AddInt64(&stats.Failed, 1)
				ig.Logger.Warn("sentence lookup failed",
					zap.String("sentence", sentence), zap.Error(err))
				return err
			}
			atomic.AddInt64(&stats.Sentences, 1)
			atomic.AddInt64(&stats.Segments, int64(len(res.Segments)))
			for _, s := range res.Segments {
				if s.Unknown {
					atomic.AddInt64(&stats.Unknown, 1)
				}
			}
			return nil
		})
		if err != nil {
			pool.Close()
			return stats, err
		}
	}
	pool.Close()
	return stats, ctx.Err()
}

// SplitSentences breaks text on Chinese sentence delimiters and newlines,
// keeping the delimiter with its sentence. Fragments without any Han
// character are dropped; the pipeline would produce nothing for them anyway.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s == "" {
			return
		}
		for _, r := range s {
			if segment.IsHan(r) {
				sentences = append(sentences, s)
				return
			}
		}
	}

	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '。', '！', '？', '\n':
			flush()
		}
	}
	flush()
	return sentences
}
