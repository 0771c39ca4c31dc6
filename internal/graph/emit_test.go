package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/linkgraph/internal/connector"
	"github.com/dusk-indust/linkgraph/internal/linkage"
	"github.com/dusk-indust/linkgraph/internal/parse"
)

const phrase = "the dog barks"

func dogLinkage() *linkage.Linkage {
	return &linkage.Linkage{
		Words: []linkage.Word{
			{Text: "LEFT-WALL", Disjunct: "Wd+ RW+"},
			{Text: "the", ByteStart: 0, ByteEnd: 3, Disjunct: "D+"},
			{Text: "dog.n", ByteStart: 4, ByteEnd: 7, Disjunct: "Wd- Ds- @Ss+"},
			{Text: "barks.v", ByteStart: 8, ByteEnd: 13, Disjunct: "Ss-"},
			{Text: "RIGHT-WALL", ByteStart: 13, ByteEnd: 13, Disjunct: "RW-"},
		},
		Links: []linkage.Link{
			{Left: 0, Right: 2, Label: "Wd", LeftLabel: "Wd", RightLabel: "Wd"},
			{Left: 1, Right: 2, Label: "Ds", LeftLabel: "D", RightLabel: "Ds"},
			{Left: 2, Right: 3, Label: "Ss", LeftLabel: "Ss", RightLabel: "Ss"},
			{Left: 0, Right: 4, Label: "RW", LeftLabel: "RW", RightLabel: "RW"},
		},
	}
}

// project builds a parse result the way the policy does.
func project(t *testing.T, mode linkage.Mode, minimal bool) *parse.Result {
	t.Helper()
	n := 0
	p := &linkage.Projector{
		Phrase:     phrase,
		SentenceID: "sentence@s1",
		Minimal:    minimal,
		NewID: func() string {
			n++
			return fmt.Sprintf("w%d", n)
		},
	}
	v, err := p.Project(dogLinkage(), mode)
	require.NoError(t, err)
	res := &parse.Result{Phrase: phrase, Mode: mode, Views: []linkage.View{v}}
	if mode == linkage.ModeFull {
		res.SentenceID = p.SentenceID
	}
	return res
}

// bondsResult is a bonds-mode result with five distinct bonds, shared with
// the Kuzu tests.
func bondsResult(t *testing.T) *parse.Result {
	t.Helper()
	lk := dogLinkage()
	lk.Links = append(lk.Links, linkage.Link{Left: 1, Right: 3, Label: "X"})
	v, err := (&linkage.Projector{Phrase: phrase}).Project(lk, linkage.ModeBonds)
	require.NoError(t, err)
	return &parse.Result{Phrase: phrase, Mode: linkage.ModeBonds, Views: []linkage.View{v}}
}

func countKind(t *testing.T, s Store, kind Kind) int {
	t.Helper()
	atoms, err := s.AtomsByKind(context.Background(), kind)
	require.NoError(t, err)
	return len(atoms)
}

// ---------------------------------------------------------------------------
// Full graphs
// ---------------------------------------------------------------------------

func TestEmit_FullGraph(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	refs, err := NewEmitter(s).Emit(ctx, project(t, linkage.ModeFull, false))
	require.NoError(t, err)
	require.Equal(t, []Ref{nodeRef(KindSentence, "sentence@s1")}, refs)

	assert.Equal(t, 1, countKind(t, s, KindParse))
	assert.Equal(t, 5, countKind(t, s, KindWordInstance))
	assert.Equal(t, 5, countKind(t, s, KindWordInstanceLink))
	assert.Equal(t, 5, countKind(t, s, KindWordSequenceLink))
	assert.Equal(t, 5, countKind(t, s, KindLgWordCset))
	assert.Equal(t, 4, countKind(t, s, KindLgLinkInstance))
	assert.Equal(t, 4, countKind(t, s, KindLgLinkInstanceLink))

	in, err := s.Incoming(ctx, refs[0])
	require.NoError(t, err)
	parseLink := linkRef(KindParseLink, []Ref{nodeRef(KindParse, "sentence@s1_parse_0"), refs[0]})
	assert.Equal(t, []Ref{parseLink}, in)

	// dog's disjunct keeps its multi marker.
	dog := nodeRef(KindWordInstance, "dog@w3")
	ss := linkRef(KindLgConnector, []Ref{
		nodeRef(KindLgConn, "Ss"), nodeRef(KindLgConnDir, "+"), nodeRef(KindLgConnMulti, "@"),
	})
	got, err := s.GetAtom(ctx, ss)
	require.NoError(t, err)
	require.NotNil(t, got, "multi connector %s", ss)

	in, err = s.Incoming(ctx, dog)
	require.NoError(t, err)
	assert.Len(t, in, 7, "instance, reference, sequence and cset links plus three list links")
}

func TestEmit_FullGraphLinkInstance(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	_, err := NewEmitter(s).Emit(ctx, project(t, linkage.ModeFull, false))
	require.NoError(t, err)

	linst := nodeRef(KindLgLinkInstance, "Ds@sentence@s1_parse_0-link-1")
	want := linkRef(KindLgLinkInstanceLink, []Ref{
		linst,
		linkRef(KindLgConnector, []Ref{nodeRef(KindLgConn, "D"), nodeRef(KindLgConnDir, "+")}),
		linkRef(KindLgConnector, []Ref{nodeRef(KindLgConn, "Ds"), nodeRef(KindLgConnDir, "-")}),
	})
	got, err := s.GetAtom(ctx, want)
	require.NoError(t, err)
	assert.NotNil(t, got)

	ref := linkRef(KindReferenceLink, []Ref{linst, nodeRef(KindLgLink, "Ds")})
	got, err = s.GetAtom(ctx, ref)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestEmit_FullGraphMinimal(t *testing.T) {
	s := NewMemStore()
	_, err := NewEmitter(s).Emit(context.Background(), project(t, linkage.ModeFull, true))
	require.NoError(t, err)

	assert.Equal(t, 5, countKind(t, s, KindWordInstance))
	assert.Equal(t, 4, countKind(t, s, KindEvaluationLink))
	assert.Zero(t, countKind(t, s, KindLgWordCset))
	assert.Zero(t, countKind(t, s, KindLgLinkInstance))
	assert.Zero(t, countKind(t, s, KindLgConnector))
}

// ---------------------------------------------------------------------------
// Other views
// ---------------------------------------------------------------------------

func TestEmit_Disjuncts(t *testing.T) {
	s := NewMemStore()
	refs, err := NewEmitter(s).Emit(context.Background(), project(t, linkage.ModeDisjuncts, false))
	require.NoError(t, err)
	require.Len(t, refs, 5)

	want := linkRef(KindLgDisjunct, []Ref{
		nodeRef(KindWord, "barks"),
		linkRef(KindLgAnd, []Ref{
			linkRef(KindLgConnector, []Ref{nodeRef(KindLgConn, "Ss"), nodeRef(KindLgConnDir, "-")}),
		}),
	})
	assert.Equal(t, want, refs[3])
}

func TestEmit_ExpandedConnectors(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	_, err := NewEmitter(s, WithExpandedConnectors()).Emit(ctx, project(t, linkage.ModeDisjuncts, false))
	require.NoError(t, err)

	assert.Zero(t, countKind(t, s, KindLgConnector))
	ss := linkRef(KindConnector, []Ref{
		nodeRef(KindLgConnType, "S"),
		nodeRef(KindLgSubType, "s"),
		nodeRef(KindLgConnDir, "+"),
		nodeRef(KindLgConnMulti, "@"),
	})
	got, err := s.GetAtom(ctx, ss)
	require.NoError(t, err)
	assert.NotNil(t, got, "expanded @Ss+")
}

func TestEmit_Sections(t *testing.T) {
	s := NewMemStore()
	refs, err := NewEmitter(s).Emit(context.Background(), project(t, linkage.ModeSections, false))
	require.NoError(t, err)
	assert.Len(t, refs, 5+4, "five sections and four bonds")

	dog := linkRef(KindSection, []Ref{
		nodeRef(KindWord, "dog"),
		linkRef(KindConnectorSeq, []Ref{
			linkRef(KindConnector, []Ref{nodeRef(KindWord, linkage.LeftWall), nodeRef(KindConnectorDir, "-")}),
			linkRef(KindConnector, []Ref{nodeRef(KindWord, "the"), nodeRef(KindConnectorDir, "-")}),
			linkRef(KindConnector, []Ref{nodeRef(KindWord, "barks"), nodeRef(KindConnectorDir, "+")}),
		}),
	})
	assert.Contains(t, refs, dog)
}

func TestEmit_Bonds(t *testing.T) {
	s := NewMemStore()
	refs, err := NewEmitter(s).Emit(context.Background(), project(t, linkage.ModeBonds, false))
	require.NoError(t, err)
	require.Len(t, refs, 5+4)

	assert.Equal(t, nodeRef(KindWord, linkage.LeftWall), refs[0])
	assert.Equal(t, linkRef(KindEdgeLink, []Ref{
		nodeRef(KindBond, "Ss"),
		linkRef(KindListLink, []Ref{nodeRef(KindWord, "dog"), nodeRef(KindWord, "barks")}),
	}), refs[7])
}

// ---------------------------------------------------------------------------
// Frequencies and failures
// ---------------------------------------------------------------------------

func TestEmit_Frequencies(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	res := &parse.Result{
		Phrase: phrase,
		Mode:   linkage.ModeDisjuncts,
		Frequencies: []linkage.Occurrence{
			{Word: "dog", Connectors: []connector.DisjunctToken{{Label: "Ss", Dir: connector.DirPlus}}, Count: 3},
		},
	}

	em := NewEmitter(s)
	refs, err := em.Emit(ctx, res)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	got, err := s.GetAtom(ctx, refs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Count)

	_, err = em.Emit(ctx, res)
	require.NoError(t, err)
	got, err = s.GetAtom(ctx, refs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Count, "counts accumulate across results")
}

func TestEmit_EmptyFrequencies(t *testing.T) {
	refs, err := NewEmitter(NewMemStore()).Emit(context.Background(),
		&parse.Result{Mode: linkage.ModeDisjuncts, Frequencies: []linkage.Occurrence{}})
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestEmit_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEmitter(NewMemStore()).Emit(ctx, project(t, linkage.ModeBonds, false))
	assert.ErrorIs(t, err, context.Canceled)
}
