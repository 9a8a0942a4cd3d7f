package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aria-lang/readalign-go/internal/alignment"
	"github.com/aria-lang/readalign-go/internal/sequence"
)

const chrom = "ACGTTGCAAGGCTTACCGATGCATCGGATCCTAGCTAGGTCAACTGGTACCATG"

func newSource(t *testing.T) *sequence.MapSource {
	t.Helper()
	s, err := sequence.NewDNA("chr1", chrom)
	require.NoError(t, err)
	return sequence.NewMapSource(s)
}

func tasks() []Task {
	dna := sequence.DNA.EncodeString
	rc := func(s string) []byte { return sequence.ReverseComplement(nil, dna(s)) }
	return []Task{
		{Read: dna(chrom[2:40]), TemplateID: "chr1", Start: 2},
		{Read: dna(chrom[2:25] + chrom[26:50]), TemplateID: "chr1", Start: 2},
		{Read: dna("TTTTTTTTTTTTTTTTTTTT"), TemplateID: "chr1", Start: 0},
		{Read: dna(chrom[0:20]), TemplateID: "chr2", Start: 0},
		{Read: rc(chrom[4:36]), TemplateID: "chr1", Start: 4, ReverseComplement: true},
	}
}

func TestRun(t *testing.T) {
	engines := map[string]EngineFactory{
		"gotoh":   Gotoh,
		"hopstep": HopStep,
		"chain":   Chained(10),
	}
	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			a := New(alignment.DefaultParams(), newSource(t),
				WithEngine(engine), WithMaxScore(40), WithGrain(2))
			report, err := a.Run(context.Background(), tasks())
			require.NoError(t, err)
			require.Len(t, report.Results, 5)

			assert.True(t, report.Results[0].Aligned())
			assert.Equal(t, 0, report.Results[0].Actions.Score())
			assert.Equal(t, 2, report.Results[0].Actions.TemplateStart())

			assert.True(t, report.Results[1].Aligned())
			assert.Equal(t, 19, report.Results[1].Actions.Score())

			assert.False(t, report.Results[2].Aligned())
			assert.NoError(t, report.Results[2].Err)

			var nf *sequence.NotFoundError
			assert.True(t, errors.As(report.Results[3].Err, &nf))

			assert.True(t, report.Results[4].Aligned())
			assert.Equal(t, 0, report.Results[4].Actions.Score())

			assert.Equal(t, 3, report.AlignedCount())
			assert.Equal(t, 1, report.Unaligned)
			assert.Equal(t, 1, report.Failed)
			for _, i := range []uint{0, 1, 4} {
				assert.True(t, report.Aligned.Test(i))
			}
			assert.False(t, report.Aligned.Test(2))
			assert.False(t, report.Aligned.Test(3))
		})
	}
}

func TestRunLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := New(alignment.DefaultParams(), newSource(t), WithLogger(zap.New(core)))

	report, err := a.Run(context.Background(), tasks())
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "batch started", entries[0].Message)
	assert.Equal(t, "batch finished", entries[1].Message)

	fields := entries[1].ContextMap()
	assert.Equal(t, report.Run.String(), fields["run"])
	assert.Equal(t, int64(len(report.Results)), fields["tasks"])
	assert.Equal(t, int64(report.AlignedCount()), fields["aligned"])
	assert.Equal(t, int64(1), fields["failed"])
	assert.Contains(t, fields["summary"], "aligned")
}

func TestRunEmpty(t *testing.T) {
	a := New(alignment.DefaultParams(), newSource(t))
	report, err := a.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.AlignedCount())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(alignment.DefaultParams(), newSource(t))
	report, err := a.Run(ctx, tasks())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestRunMatchesSerial(t *testing.T) {
	p := alignment.DefaultParams()
	src := newSource(t)
	ts := tasks()
	for i := 0; i < 40; i++ {
		ts = append(ts, ts[i%5])
	}

	report, err := New(p, src, WithGrain(3)).Run(context.Background(), ts)
	require.NoError(t, err)

	g := alignment.NewGotoh(p)
	template, err := src.Residues("chr1")
	require.NoError(t, err)
	for i, task := range ts {
		if task.TemplateID != "chr1" {
			continue
		}
		want, ok := g.CalculateEditDistance(task.Read, len(task.Read), template, task.Start, p.MaxShift(len(task.Read)), 1<<31-1, task.ReverseComplement)
		require.Equal(t, ok, report.Results[i].Aligned(), "task %d", i)
		if ok {
			assert.True(t, want.Equal(report.Results[i].Actions), "task %d", i)
		}
	}
}
