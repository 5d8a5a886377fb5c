package charinfo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiyin/cidian/pkg/dictionary"
)

func testResolver() *Resolver {
	idx := dictionary.NewCharIndex([]dictionary.CharEntry{
		{Character: "好", Radical: "女", Strokes: 6, Components: []string{"女", "子"}},
		{Character: "妈", Radical: "女", Strokes: 6, Components: []string{"女", "马"}},
	}, map[string]string{"女": "woman"})
	return NewResolver(idx)
}

func TestResolve(t *testing.T) {
	r := testResolver()
	info := r.Resolve("好")
	assert.Equal(t, "女", info.Radical)
	assert.Equal(t, "woman", info.RadicalMeaning)
	assert.Equal(t, 6, info.StrokeCount)
	assert.Equal(t, []string{"女", "子"}, info.Components)
}

func TestResolveMissDegrades(t *testing.T) {
	r := testResolver()
	info := r.Resolve("馬")
	assert.Equal(t, "馬", info.Character)
	assert.Equal(t, "馬", info.Radical) // falls back to the character itself
	assert.Zero(t, info.StrokeCount)
	assert.Empty(t, info.Components)
}

func TestResolveWordSkipsNonHan(t *testing.T) {
	r := testResolver()
	infos := r.ResolveWord("好a妈")
	require.Len(t, infos, 2)
	assert.Equal(t, "好", infos[0].Character)
	assert.Equal(t, "妈", infos[1].Character)
}

func TestComponentIndexRecordAndDedup(t *testing.T) {
	ci := NewComponentIndex()
	ci.Record("女", "好")
	ci.Record("女", "妈")
	ci.Record("女", "好") // already present, no-op
	assert.Equal(t, []string{"好", "妈"}, ci.Characters("女"))
}

func TestComponentIndexEviction(t *testing.T) {
	ci := NewComponentIndex()
	var last []string
	for i := 0; i < 25; i++ {
		ch := string(rune(0x4E00 + i))
		ci.Record("女", ch)
		last = append(last, ch)
	}
	got := ci.Characters("女")
	require.Len(t, got, MaxPerComponent)
	// oldest five evicted, most-recent-last order retained
	assert.Equal(t, last[5:], got)
}

func TestSeenInExcludesSelfAndCaps(t *testing.T) {
	ci := NewComponentIndex()
	for i := 0; i < 10; i++ {
		ci.Record("木", fmt.Sprintf("字%d", i))
	}
	ci.Record("木", "林")
	seen := ci.SeenIn("木", "林")
	require.Len(t, seen, SeenInDisplay)
	assert.NotContains(t, seen, "林")
}
