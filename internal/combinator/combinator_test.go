package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/melody"
	"github.com/crispy-lang/crispy/internal/pattern"
	"github.com/crispy-lang/crispy/internal/scales"
)

func compile(t *testing.T, def string, length duration.Duration) pattern.Pattern {
	t.Helper()
	p, err := melody.Compile(def, length)
	assert.NoError(t, err)
	return p
}

func compileBar(t *testing.T, def string) pattern.Pattern {
	return compile(t, def, duration.Bar)
}

func TestRev(t *testing.T) {
	foo := compileBar(t, "[C3 D3 E3 F3 G3]").Pipe(Rev)
	want := compileBar(t, "[G3 F3 E3 D3 C3]")
	assert.Equal(t, want.Events, foo.Events)
}

func TestTranspose(t *testing.T) {
	got := compileBar(t, "[C3 E3 G3]").Pipe(Tran(7))
	want := compileBar(t, "[G3 B3 D4]")
	assert.Equal(t, want.Events, got.Events)
}

func TestTransposeLeavesRestsAlone(t *testing.T) {
	got := compileBar(t, "[C4 . G4]").Pipe(Tran(12))
	want := compileBar(t, "[C5 . G5]")
	assert.Equal(t, want.Events, got.Events)
}

func TestRotRight(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 F3 G3]").Pipe(Rot(1))
	want := compileBar(t, "[G3 C3 D3 E3 F3]")
	assert.Equal(t, want.Events, got.Events)
}

func TestRotLeft(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 F3 G3]").Pipe(Rot(-2))
	want := compileBar(t, "[E3 F3 G3 C3 D3]")
	assert.Equal(t, want.Events, got.Events)
}

func TestRClipExactBoundary(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.New(5, 4))
	got := p.Pipe(RClip(duration.Bar.DivInt(4)))
	want := compileBar(t, "[C3 D3 E3 F3]")
	assert.Equal(t, want.Events, got.Events)
	assert.True(t, got.LengthBars.Equal(duration.Bar))
}

func TestRClipOvershoot(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.New(5, 4))
	got := p.Pipe(RClip(duration.Bar.DivInt(8)))
	want := compileBar(t, "[C3 D3 E3 F3]").Concat(compile(t, "[G3]", duration.Bar.DivInt(8)))
	assert.Equal(t, want.Events, got.Events)
}

func TestRClipPartialEventOvershoot(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.New(5, 4))
	got := p.Pipe(RClip(duration.Bar.Mul(duration.New(3, 8))))
	want := compile(t, "[C3 D3 E3]", duration.New(3, 4)).Concat(compile(t, "[F3]", duration.Bar.DivInt(8)))
	assert.Equal(t, want.Events, got.Events)
}

func TestLClip(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.New(5, 4))
	got := p.Pipe(LClip(duration.Bar.DivInt(4)))
	want := compileBar(t, "[D3 E3 F3 G3]")
	assert.Equal(t, want.Events, got.Events)
}

func TestLClipOvershoot(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.New(5, 4))
	got := p.Pipe(LClip(duration.Bar.DivInt(8)))
	want := compile(t, "[C3]", duration.Bar.DivInt(8)).Concat(compileBar(t, "[D3 E3 F3 G3]"))
	assert.Equal(t, want.Events, got.Events)
}

func TestLClipZeroIsIdentity(t *testing.T) {
	p := compile(t, "[C3 D3 E3 F3 G3]", duration.Quarter.MulInt(5))
	got := p.Pipe(LClip(duration.Zero))
	assert.Equal(t, p.Events, got.Events)
	assert.True(t, got.LengthBars.Equal(p.LengthBars))
}

func TestLAdd(t *testing.T) {
	other := compileBar(t, "[C3 D3 E3 G3]").Pipe(Tran(12))
	piped := compileBar(t, "[C3 D3 E3 G3]")
	got := piped.Pipe(LAdd(other))
	want := compile(t, "[C4 D4 E4 G4 C3 D3 E3 G3]", duration.Bar.MulInt(2))
	assert.Equal(t, want.Events, got.Events)
	assert.True(t, got.LengthBars.Equal(want.LengthBars))
	assert.Equal(t, piped.Name, got.Name)
}

func TestRAdd(t *testing.T) {
	other := compileBar(t, "[C3 D3 E3 G3]").Pipe(Tran(12))
	got := compileBar(t, "[C3 D3 E3 G3]").Pipe(RAdd(other))
	want := compile(t, "[C3 D3 E3 G3 C4 D4 E4 G4]", duration.Bar.MulInt(2))
	assert.Equal(t, want.Events, got.Events)
}

func TestResize(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 G3]").Pipe(Resize(duration.Bar.MulInt(3)))
	want := compile(t, "[C3 D3 E3 G3]", duration.Bar.MulInt(3))
	assert.Equal(t, want.Events, got.Events)
	assert.True(t, got.LengthBars.Equal(want.LengthBars))
}

func TestREvery(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 G3]").Pipe(REvery(2, Rev))
	want := compileBar(t, "[C3 D3 E3 G3]").Concat(compileBar(t, "[G3 E3 D3 C3]"))
	assert.Equal(t, want.Events, got.Events)
}

func TestLEvery(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 G3]").Pipe(LEvery(2, Rev))
	want := compileBar(t, "[G3 E3 D3 C3]").Concat(compileBar(t, "[C3 D3 E3 G3]"))
	assert.Equal(t, want.Events, got.Events)
}

func TestEachIdentity(t *testing.T) {
	got := compileBar(t, "[C3 D3 E3 G3]").Pipe(Each(func(e pattern.Event) pattern.Event { return e }))
	want := compileBar(t, "[C3 D3 E3 G3]")
	assert.Equal(t, want.Events, got.Events)
}

func TestEachMultipliesDurationAndRecomputesLength(t *testing.T) {
	got := compileBar(t, "[C3 G3]").Pipe(Each(func(e pattern.Event) pattern.Event {
		return e.WithDur(e.Dur.MulInt(2))
	}))
	assert.True(t, got.LengthBars.Equal(duration.Bar.MulInt(2)))
	for _, ev := range got.Events {
		assert.True(t, ev.Dur.Equal(duration.Bar))
	}
}

func TestEachNoteMultipliesInnerDurationLeavingLengthAlone(t *testing.T) {
	p := compileBar(t, "[C3 G3]")
	got := p.Pipe(EachNote(func(n pattern.Note) pattern.Note {
		return n.WithDur(n.Dur.MulInt(4))
	}))
	assert.True(t, got.LengthBars.Equal(p.LengthBars))
	for i, ev := range got.Events {
		assert.True(t, ev.Dur.Equal(p.Events[i].Dur))
		n, ok := ev.AsNote()
		assert.True(t, ok)
		assert.True(t, n.Dur.Equal(duration.New(2, 1)))
	}
}

func TestQuantizeSnapsToNearestScaleDegree(t *testing.T) {
	scale := scales.All["Maj"]
	p := pattern.New("foo", []pattern.Event{
		{Action: pattern.Note{NoteNum: 61, Velocity: 0.5, Dur: duration.Half}, Dur: duration.Bar},
	}, duration.Bar)
	got := p.Pipe(Quantize(scale, 60))
	n, ok := got.Events[0].AsNote()
	assert.True(t, ok)
	assert.Equal(t, 60, n.NoteNum)
}

func TestVelocityClamps(t *testing.T) {
	p := pattern.New("foo", []pattern.Event{
		{Action: pattern.Note{NoteNum: 60, Velocity: 0.9, Dur: duration.Half}, Dur: duration.Bar},
	}, duration.Bar)
	got := p.Pipe(Velocity(func(v float64) float64 { return v * 2 }))
	n, ok := got.Events[0].AsNote()
	assert.True(t, ok)
	assert.Equal(t, 1.0, n.Velocity)
}

func TestChannelSetsEnvelopeChannel(t *testing.T) {
	got := compileBar(t, "[C3]").Pipe(Channel(10))
	assert.Equal(t, 10, got.Channel)
}

func TestChannelOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Channel(0) })
	assert.Panics(t, func() { Channel(17) })
}

func TestRClipRequiresShorterLength(t *testing.T) {
	p := compileBar(t, "[C3 D3]")
	assert.Panics(t, func() { p.Pipe(RClip(duration.Bar)) })
}
