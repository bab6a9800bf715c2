package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanape/internal/grapheme"
	"github.com/verte-zerg/kanape/internal/kana"
)

var (
	voicedMark     = kana.Unit{Kind: kana.UnitVoiced}
	semiVoicedMark = kana.Unit{Kind: kana.UnitSemiVoiced}
)

func TestAppendText(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	assert.True(t, b.Append(kana.Text("ね")))
	assert.True(t, b.Append(kana.Text("こ")))
	assert.Equal(t, "ねこ", b.String())
	assert.Equal(t, 2, b.Len())

	assert.False(t, b.Append(kana.None))
	assert.False(t, b.Append(kana.Text("")))
	assert.Equal(t, "ねこ", b.String())
}

func TestMarkFusesIntoEveryVoiceableBase(t *testing.T) {
	for _, base := range []rune("かきくけこさしすせそたちつてとはひふへほ") {
		b := New(grapheme.SegmentClusters)
		require.True(t, b.Append(kana.Text(string(base))))
		require.True(t, b.Append(voicedMark), "%c", base)

		want, ok := kana.Voiced(base)
		require.True(t, ok)
		gs := b.Graphemes()
		require.Len(t, gs, 1)
		assert.True(t, grapheme.CanonicalEqual(gs[0], string(want)))
	}
}

func TestSemiVoicedMark(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	b.Append(kana.Text("ひ"))
	require.True(t, b.Append(semiVoicedMark))
	assert.Equal(t, "ぴ", b.String())
}

func TestMarkWithoutEligibleBaseIsNoop(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	assert.False(t, b.Append(voicedMark), "empty buffer")
	assert.Equal(t, "", b.String())

	b.Append(kana.Text("ね"))
	assert.False(t, b.Append(voicedMark))
	assert.False(t, b.Append(semiVoicedMark))
	assert.Equal(t, "ね", b.String())

	b.Append(kana.Text("か"))
	assert.False(t, b.Append(semiVoicedMark), "か has no semi-voiced form")
	assert.Equal(t, "ねか", b.String())
}

func TestMarkDoesNotStack(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	b.Append(kana.Text("は"))
	require.True(t, b.Append(voicedMark))
	assert.False(t, b.Append(voicedMark))
	assert.False(t, b.Append(semiVoicedMark))
	assert.Equal(t, "ば", b.String())
}

func TestRemoveLast(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	assert.False(t, b.RemoveLast())

	b.Append(kana.Text("ね"))
	b.Append(kana.Text("か"))
	b.Append(voicedMark)
	require.True(t, b.RemoveLast())
	assert.Equal(t, "ね", b.String())
	require.True(t, b.RemoveLast())
	assert.Equal(t, "", b.String())
	assert.False(t, b.RemoveLast())
}

func TestBackspaceRoundTrip(t *testing.T) {
	b := New(grapheme.SegmentClusters)
	for _, u := range []kana.Unit{kana.Text("が"), kana.Text("っ"), kana.Text("こ")} {
		b.Append(u)
	}
	before := b.String()

	b.RemoveLast()
	b.Append(kana.Text("こ"))
	assert.True(t, grapheme.CanonicalEqual(before, b.String()))

	b.Reset()
	b.Append(kana.Text("か"))
	b.Append(voicedMark)
	fused := b.String()
	b.RemoveLast()
	b.Append(kana.Text("か"))
	b.Append(voicedMark)
	assert.True(t, grapheme.CanonicalEqual(fused, b.String()))
}

func TestReset(t *testing.T) {
	b := New(grapheme.SegmentRunes)
	b.Append(kana.Text("あ"))
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "", b.String())
}
