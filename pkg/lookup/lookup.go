// Package lookup assembles the full pipeline: segmentation, definition
// ranking, pinyin rendering, character metadata, component occurrence
// tracking, and the create-or-merge into the vocabulary store.
package lookup

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/weiyin/cidian/pkg/charinfo"
	"github.com/weiyin/cidian/pkg/pinyin"
	"github.com/weiyin/cidian/pkg/segment"
	"github.com/weiyin/cidian/pkg/vocab"
)

// Request is one lookup call. SkipSave runs the full pipeline and component
// index update without touching the vocabulary store; callers use it when
// re-displaying a previous result rather than performing a fresh lookup.
type Request struct {
	Text      string
	Context   string
	SourceURL string
	SkipSave  bool
}

// Segment is the unit of meaning in a lookup result.
type Segment struct {
	Word           string
	PinyinRaw      string
	Pinyin         string
	Definitions    []string
	Characters     []charinfo.CharacterInfo
	IsAlreadyKnown bool
	HSKLevel       int
	Unknown        bool
}

// Result is the assembled lookup output. Ephemeral; the store keeps its own
// durable form.
type Result struct {
	OriginalText         string
	FullPinyin           string
	Segments             []Segment
	ComponentOccurrences map[string][]string
}

// Pipeline wires the lookup stages together. Construct once and share; every
// stage is safe for concurrent use.
type Pipeline struct {
	seg        *segment.Segmenter
	chars      *charinfo.Resolver
	components *charinfo.ComponentIndex
	store      *vocab.Store
	syncer     *vocab.Syncer
	log        *zap.Logger
}

// New creates a Pipeline. syncer may be nil when no replication boundary is
// configured; store must be non-nil.
func New(seg *segment.Segmenter, chars *charinfo.Resolver, store *vocab.Store, syncer *vocab.Syncer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		seg:        seg,
		chars:      chars,
		components: charinfo.NewComponentIndex(),
		store:      store,
		syncer:     syncer,
		log:        log,
	}
}

// Lookup runs the full pipeline for one span of text. It never fails for
// non-Chinese or empty input; the result simply carries no segments.
func (p *Pipeline) Lookup(ctx context.Context, req Request) (*Result, error) {
	normalized := segment.Normalize(req.Text)
	result := &Result{
		OriginalText:         normalized,
		ComponentOccurrences: map[string][]string{},
	}
	if normalized == "" {
		return result, nil
	}

	matches := p.seg.Segment(normalized)
	var pinyinParts []string

	for _, m := range matches {
		best := segment.SelectBest(m.Senses)
		seg := Segment{
			Word:        m.Word,
			PinyinRaw:   best.PinyinRaw,
			Pinyin:      pinyin.ToneMarks(best.PinyinRaw),
			Definitions: segment.RankDefinitions(m.Senses),
			Characters:  p.chars.ResolveWord(m.Word),
			HSKLevel:    best.HSKLevel,
			Unknown:     m.Unknown,
		}

		// Component occurrences update on every lookup, saved or not.
		for _, info := range seg.Characters {
			p.components.RecordCharacter(info)
		}
		for _, info := range seg.Characters {
			for _, comp := range componentsOf(info) {
				if _, done := result.ComponentOccurrences[comp]; !done {
					result.ComponentOccurrences[comp] = p.components.SeenIn(comp, info.Character)
				}
			}
		}

		if seg.Pinyin != "" {
			pinyinParts = append(pinyinParts, seg.Pinyin)
		}

		seg.IsAlreadyKnown = p.isKnown(ctx, m.Word)
		if !req.SkipSave {
			if err := p.save(ctx, &seg, req); err != nil {
				return nil, err
			}
		}

		result.Segments = append(result.Segments, seg)
	}

	result.FullPinyin = strings.Join(pinyinParts, " ")
	return result, nil
}

func (p *Pipeline) isKnown(ctx context.Context, word string) bool {
	if p.store == nil {
		return false
	}
	_, err := p.store.Get(ctx, word)
	return err == nil
}

func (p *Pipeline) save(ctx context.Context, seg *Segment, req Request) error {
	if p.store == nil {
		return nil
	}
	in := vocab.SaveInput{
		Word:       seg.Word,
		Pinyin:     seg.Pinyin,
		Characters: seg.Characters,
	}
	// Placeholder definitions carry no information worth persisting.
	if !seg.Unknown {
		in.Definitions = seg.Definitions
	}
	if s := strings.TrimSpace(req.Context); s != "" {
		in.Context = &vocab.Context{Sentence: s, SourceURL: req.SourceURL}
	}
	entry, err := p.store.SaveOrUpdate(ctx, in)
	if err != nil {
		return err
	}
	if p.syncer != nil {
		// Replication is best effort: a transport failure degrades to a
		// warning, the local result still stands.
		if err := p.syncer.PushLocal(ctx, entry); err != nil {
			p.log.Warn("outbound replica write failed",
				zap.String("word", entry.ID), zap.Error(err))
		}
	}
	return nil
}

func componentsOf(info charinfo.CharacterInfo) []string {
	comps := []string{info.Radical}
	for _, c := range info.Components {
		if c != info.Radical {
			comps = append(comps, c)
		}
	}
	return comps
}
