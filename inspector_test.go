package willowdom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phanxgames/willowdom/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prepGraph records the sheet state seen by Prepare and can panic.
type prepGraph struct {
	tgraph
	sheet    *overlay.StyleSheet
	disabled []bool
	explode  bool
}

func (g *prepGraph) Prepare(*tnode) {
	if g.sheet != nil {
		g.disabled = append(g.disabled, g.sheet.Disabled())
	}
	if g.explode {
		panic("prepare")
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNewDefaults(t *testing.T) {
	insp := New[*tnode](&tgraph{}, tn("root", KindContainer), nil)
	assert.Equal(t, DefaultUpdateInterval, insp.UpdateInterval())
	assert.Equal(t, 200*time.Millisecond, insp.UpdateInterval())
	require.NotNil(t, insp.Surface())
	require.NotNil(t, insp.Registry())
	assert.Equal(t, 1, insp.Stats().Passes)
	assert.Equal(t, "px-container", insp.Root().Tag())
}

func TestFluentBindings(t *testing.T) {
	root := tn("root", "Board", KindContainer, KindNode).with("Score", 7).add(tn("cell", KindSprite, KindNode))
	insp := New[*tnode](&tgraph{}, root, nil)
	insp.Bind("Board", "Score", nil).Leaf("Board").Hide(KindContainer)
	insp.Update()

	m := insp.Root()
	v, ok := m.GetAttribute("score")
	require.True(t, ok)
	assert.Equal(t, "7", v)
	assert.True(t, m.Empty())
	assert.True(t, m.Style().Hidden)
}

func TestTickHonoursInterval(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	insp := New[*tnode](&tgraph{}, tn("root"), nil, WithClock(clk.now))

	clk.advance(100 * time.Millisecond)
	assert.False(t, insp.Tick())
	clk.advance(100 * time.Millisecond)
	assert.True(t, insp.Tick())
	assert.False(t, insp.Tick())
	assert.Equal(t, 2, insp.Stats().Passes)

	insp.SetUpdateInterval(50 * time.Millisecond)
	clk.advance(50 * time.Millisecond)
	assert.True(t, insp.Tick())

	insp.SetUpdateInterval(0)
	assert.Equal(t, DefaultUpdateInterval, insp.UpdateInterval())
}

func TestRunUntilCancelled(t *testing.T) {
	insp := New[*tnode](&tgraph{}, tn("root"), nil, WithUpdateInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- insp.Run(ctx) }()

	require.Eventually(t, func() bool { return insp.Stats().Passes >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunSwitchesInterval(t *testing.T) {
	insp := New[*tnode](&tgraph{}, tn("root"), nil, WithUpdateInterval(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = insp.Run(ctx) }()

	insp.SetUpdateInterval(time.Millisecond)
	require.Eventually(t, func() bool { return insp.Stats().Passes >= 3 }, time.Second, time.Millisecond)
}

func TestDoSerializesMutation(t *testing.T) {
	root := tn("root", KindContainer, KindNode)
	insp := New[*tnode](&tgraph{}, root, nil, WithUpdateInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = insp.Run(ctx) }()

	for i := 0; i < 20; i++ {
		insp.Do(func(*overlay.Element) { root.add(tn("child", KindSprite, KindNode)) })
	}
	require.Eventually(t, func() bool {
		var n int
		insp.Do(func(m *overlay.Element) { n = m.NumChildren() })
		return n == 20
	}, time.Second, time.Millisecond)
}

func TestPassDisablesSheetAndRecovers(t *testing.T) {
	root, a, _, _, _, _ := sampleScene()
	surface := overlay.NewSurface(0, 0)
	g := &prepGraph{sheet: surface.Sheet()}
	reg := NewRegistry()
	reg.Register(KindNode, Attribute{Name: "X"})
	insp := New[*tnode](g, root, surface, WithRegistry(reg))

	g.explode = true
	insp.Update()
	assert.Equal(t, []bool{true, true}, g.disabled)
	assert.False(t, surface.Sheet().Disabled())

	insp.Root().ChildAt(0).SetAttribute("x", "8")
	insp.Update()
	assert.Equal(t, 8.0, a.fields["X"], "observation resumes after a failed prepare")
}

func TestPickPublishesSourceNode(t *testing.T) {
	root, a, _, _, _, _ := sampleScene()
	surface := overlay.NewSurface(10, 20)
	var hostPicks int
	surface.OnPick = func(*overlay.Element, overlay.MouseButton) { hostPicks++ }
	insp := New[*tnode](&tgraph{}, root, surface)

	in := &fakeInput{held: true, x: 12, y: 23, pressed: overlay.MouseButtonRight, click: true}
	insp.HandleInput(in, 1.0/60)
	assert.Same(t, a, Picked())
	assert.Equal(t, 1, hostPicks)
	assert.Same(t, insp.Root().ChildAt(0), surface.Picked())
}
