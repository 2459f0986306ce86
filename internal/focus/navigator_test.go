package focus

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yourusername/spotlight/internal/scene"
	"github.com/yourusername/spotlight/internal/types"
)

type recorder struct {
	events []string
}

func (r *recorder) options() []Option {
	return []Option{
		OnLeave(func(id types.NodeID) { r.events = append(r.events, fmt.Sprintf("leave %d", id)) }),
		OnFocus(func(id types.NodeID) { r.events = append(r.events, fmt.Sprintf("focus %d", id)) }),
	}
}

func (f *fixture) navigator(opts ...Option) *Navigator {
	return NewNavigator(f.scene, f.state, append([]Option{WithLogger(f.logger())}, opts...)...)
}

// A single row:
// +---+ +---+ +---+
// | a | | b | | c |
// +---+ +---+ +---+
func makeRow(t *testing.T) (*fixture, []types.NodeID) {
	t.Helper()
	f := newFixture(t)
	a := f.node("a", types.NoContainer, rect(0, 0, 10, 10))
	b := f.node("b", types.NoContainer, rect(20, 0, 10, 10))
	c := f.node("c", types.NoContainer, rect(40, 0, 10, 10))
	return f, []types.NodeID{a, b, c}
}

func TestNavigator_MoveNotifiesLeaveThenFocus(t *testing.T) {
	f, ids := makeRow(t)
	rec := &recorder{}
	nav := f.navigator(rec.options()...)

	if !nav.Focus(ids[0]) {
		t.Fatal("Focus(a) should succeed")
	}
	if !nav.Move(types.DirRight) {
		t.Fatal("Move(right) should succeed")
	}

	if nav.Current() != ids[1] {
		t.Errorf("expected b (%d), got %d", ids[1], nav.Current())
	}
	want := []string{"focus 1", "leave 1", "focus 2"}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigator_MoveWithoutTargetIsNoop(t *testing.T) {
	f, ids := makeRow(t)
	rec := &recorder{}
	nav := f.navigator(rec.options()...)
	nav.Focus(ids[0])
	rec.events = nil
	historyLen := len(nav.History())

	for _, dir := range []types.Direction{types.DirLeft, types.DirUp, types.DirDown} {
		if nav.Move(dir) {
			t.Errorf("Move(%s) from a should have no effect", dir)
		}
	}

	if nav.Current() != ids[0] {
		t.Errorf("focus moved to %d", nav.Current())
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no notifications, got %v", rec.events)
	}
	if len(nav.History()) != historyLen {
		t.Errorf("expected history to stay at %d entries, got %d", historyLen, len(nav.History()))
	}
}

func TestNavigator_MoveWithoutFocus(t *testing.T) {
	f, _ := makeRow(t)
	nav := f.navigator()

	if nav.Move(types.DirRight) {
		t.Error("Move without a focused node should return false")
	}
	if nav.Current() != types.NoNode {
		t.Errorf("expected nothing focused, got %d", nav.Current())
	}
}

func TestNavigator_FocusSameNodeIsNoop(t *testing.T) {
	f, ids := makeRow(t)
	rec := &recorder{}
	nav := f.navigator(rec.options()...)

	nav.Focus(ids[1])
	if nav.Focus(ids[1]) {
		t.Error("refocusing the current node should return false")
	}
	if len(rec.events) != 1 {
		t.Errorf("expected a single notification, got %v", rec.events)
	}
}

func TestNavigator_FocusRejectsDisabledAndStale(t *testing.T) {
	f, ids := makeRow(t)
	nav := f.navigator()

	if err := f.scene.SetDisabled(ids[1], true); err != nil {
		t.Fatal(err)
	}
	if nav.Focus(ids[1]) {
		t.Error("disabled node should not take focus")
	}
	if nav.Focus(types.NodeID(99)) {
		t.Error("unknown node should not take focus")
	}

	nav.Focus(ids[0])
	if !nav.Move(types.DirRight) || nav.Current() != ids[2] {
		t.Errorf("move should skip the disabled node, got %d", nav.Current())
	}
}

func TestNavigator_ReentrantCallsAreQueued(t *testing.T) {
	f, ids := makeRow(t)
	var (
		nav    *Navigator
		events []string
		inner  []bool
	)
	nav = f.navigator(
		OnLeave(func(id types.NodeID) { events = append(events, fmt.Sprintf("leave %d", id)) }),
		OnFocus(func(id types.NodeID) {
			events = append(events, fmt.Sprintf("focus %d", id))
			if nav.phase != phaseFocusing {
				t.Errorf("expected phaseFocusing inside a handler")
			}
			if id == ids[1] {
				inner = append(inner, nav.Move(types.DirRight))
			}
		}),
	)

	nav.Focus(ids[0])
	if !nav.Move(types.DirRight) {
		t.Fatal("outer move should succeed")
	}

	if diff := cmp.Diff([]bool{false}, inner); diff != "" {
		t.Errorf("inner call result mismatch (-want +got):\n%s", diff)
	}
	want := []string{"focus 1", "leave 1", "focus 2", "leave 2", "focus 3"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if nav.Current() != ids[2] {
		t.Errorf("queued move should have reached c (%d), got %d", ids[2], nav.Current())
	}
	if nav.phase != phaseIdle {
		t.Error("expected phaseIdle after dispatch")
	}
}

func TestNavigator_UnmountFocusedNode(t *testing.T) {
	f := newFixture(t)
	panel := f.container("panel", types.NoContainer, types.Policy{EnterTo: types.EnterLastFocused})
	a := f.node("a", panel, rect(0, 0, 10, 10))
	f.node("b", panel, rect(20, 0, 10, 10))

	rec := &recorder{}
	nav := f.navigator(rec.options()...)
	nav.Focus(a)
	rec.events = nil

	if err := nav.Unmount(a); err != nil {
		t.Fatalf("Unmount: %v", err)
	}

	if nav.Current() != types.NoNode {
		t.Errorf("expected nothing focused, got %d", nav.Current())
	}
	if _, ok := f.state.LastFocused(panel); ok {
		t.Error("lastFocused should not reference an unmounted node")
	}
	if len(rec.events) != 0 {
		t.Errorf("unmount should not notify, got %v", rec.events)
	}
	if nav.Move(types.DirRight) {
		t.Error("move after unmounting the focused node should have no effect")
	}
	if err := nav.Unmount(a); err == nil {
		t.Error("unmounting twice should fail")
	}
}

func TestNavigator_MountThenNavigate(t *testing.T) {
	f, ids := makeRow(t)
	nav := f.navigator()
	nav.Focus(ids[2])

	d, err := nav.Mount(scene.NodeSpec{Name: "d", Rect: rect(60, 0, 10, 10)})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !nav.Move(types.DirRight) || nav.Current() != d {
		t.Errorf("expected to reach mounted node %d, got %d", d, nav.Current())
	}
}

func TestNavigator_RemoveContainer(t *testing.T) {
	f := newFixture(t)
	panel := f.container("panel", types.NoContainer, types.Policy{})
	a := f.node("a", panel, rect(0, 0, 10, 10))
	b := f.node("b", types.NoContainer, rect(20, 0, 10, 10))

	nav := f.navigator()
	nav.Focus(a)

	if err := nav.RemoveContainer(panel); err != nil {
		t.Fatalf("RemoveContainer: %v", err)
	}
	if nav.Current() != types.NoNode {
		t.Errorf("expected focus cleared, got %d", nav.Current())
	}
	if len(f.state.LastFocusedEntries()) != 0 {
		t.Errorf("expected no history, got %v", f.state.LastFocusedEntries())
	}
	if !nav.Focus(b) {
		t.Error("remaining node should still take focus")
	}
}

func TestNavigator_Pause(t *testing.T) {
	f, ids := makeRow(t)
	nav := f.navigator()
	nav.Focus(ids[0])

	nav.Pause()
	if !nav.Paused() {
		t.Error("expected paused")
	}
	if nav.Move(types.DirRight) || nav.Focus(ids[2]) {
		t.Error("paused navigator should not change focus")
	}

	nav.Resume()
	if !nav.Move(types.DirRight) {
		t.Error("resumed navigator should move")
	}
}

func TestNavigator_SelfOnlyContainerBlocks(t *testing.T) {
	f := newFixture(t)
	outer := f.container("outer", types.NoContainer, types.Policy{})
	inner := f.container("inner", outer, types.Policy{Restrict: types.RestrictSelfOnly})
	up := f.node("up", inner, rect(0, 0, 10, 10))
	origin := f.node("origin", inner, rect(0, 50, 10, 10))
	f.node("right", outer, rect(50, 50, 10, 10))

	rec := &recorder{}
	nav := f.navigator(rec.options()...)
	nav.Focus(origin)
	rec.events = nil

	if nav.Move(types.DirRight) {
		t.Error("self-only container should block the move")
	}
	if len(rec.events) != 0 {
		t.Errorf("blocked move should not notify, got %v", rec.events)
	}
	if !nav.Move(types.DirUp) || nav.Current() != up {
		t.Errorf("move inside the container should work, got %d", nav.Current())
	}
}

func TestNavigator_LastFocusedFallsBackToDefaultElement(t *testing.T) {
	f := newFixture(t)
	origin := f.node("origin", types.NoContainer, rect(0, 0, 10, 10))
	list := f.container("list", types.NoContainer, types.Policy{})
	f.node("l1", list, rect(100, 0, 10, 10))
	l2 := f.node("l2", list, rect(100, 20, 10, 10))
	f.policy(list, types.Policy{EnterTo: types.EnterLastFocused, DefaultElement: l2})

	nav := f.navigator()
	nav.Focus(origin)
	if !nav.Move(types.DirRight) {
		t.Fatal("move should succeed")
	}
	if nav.Current() != l2 {
		t.Errorf("expected default element l2 (%d), got %d", l2, nav.Current())
	}
}

func TestNavigator_LastFocusedRemembered(t *testing.T) {
	f := newFixture(t)
	origin := f.node("origin", types.NoContainer, rect(0, 0, 10, 10))
	list := f.container("list", types.NoContainer, types.Policy{EnterTo: types.EnterLastFocused})
	f.node("l1", list, rect(100, 0, 10, 10))
	l2 := f.node("l2", list, rect(100, 20, 10, 10))

	nav := f.navigator()
	nav.Focus(l2)
	nav.Focus(origin)

	if last, ok := f.state.LastFocused(list); !ok || last != l2 {
		t.Errorf("expected list to remember l2, got (%d, %v)", last, ok)
	}
	if !nav.Move(types.DirRight) || nav.Current() != l2 {
		t.Errorf("expected to re-enter at l2 (%d), got %d", l2, nav.Current())
	}
}

func TestNavigator_LeaveForSkipsEnterPolicy(t *testing.T) {
	f := newFixture(t)
	menu := f.container("menu", types.NoContainer, types.Policy{})
	a := f.node("a", menu, rect(0, 0, 10, 10))
	side := f.container("side", types.NoContainer, types.Policy{})
	s1 := f.node("s1", side, rect(100, 0, 10, 10))
	s2 := f.node("s2", side, rect(100, 20, 10, 10))

	f.policy(side, types.Policy{EnterTo: types.EnterDefaultElement, DefaultElement: s1})
	var p types.Policy
	p.SetLeave(types.DirRight, types.LeaveToNode(s2))
	f.policy(menu, p)

	nav := f.navigator()
	nav.Focus(a)
	if !nav.Move(types.DirRight) || nav.Current() != s2 {
		t.Errorf("expected leaveFor target s2 (%d), got %d", s2, nav.Current())
	}

	history := nav.History()
	if last := history[len(history)-1]; last.Cause != CauseLeaveFor || last.Direction != "right" {
		t.Errorf("unexpected transition %+v", last)
	}
}

func TestNavigator_FocusContainer(t *testing.T) {
	f := newFixture(t)
	f.node("outside", types.NoContainer, rect(0, 0, 10, 10))
	panel := f.container("panel", types.NoContainer, types.Policy{})
	p1 := f.node("p1", panel, rect(100, 0, 10, 10))
	p2 := f.node("p2", panel, rect(100, 20, 10, 10))
	empty := f.container("empty", types.NoContainer, types.Policy{})

	nav := f.navigator()
	if !nav.FocusContainer(panel) || nav.Current() != p1 {
		t.Errorf("expected first member p1 (%d), got %d", p1, nav.Current())
	}

	f.policy(panel, types.Policy{EnterTo: types.EnterDefaultElement, DefaultElement: p2})
	nav.Focus(types.NodeID(1))
	if !nav.FocusContainer(panel) || nav.Current() != p2 {
		t.Errorf("expected default element p2 (%d), got %d", p2, nav.Current())
	}

	if nav.FocusContainer(empty) {
		t.Error("empty container should not take focus")
	}
}

func TestNavigator_FocusFirst(t *testing.T) {
	f, ids := makeRow(t)
	if err := f.scene.SetDisabled(ids[0], true); err != nil {
		t.Fatal(err)
	}
	nav := f.navigator()

	if !nav.FocusFirst() || nav.Current() != ids[1] {
		t.Errorf("expected first enabled node b (%d), got %d", ids[1], nav.Current())
	}
}

func TestNavigator_History(t *testing.T) {
	f, ids := makeRow(t)
	nav := f.navigator(WithHistory(2))

	nav.Focus(ids[0])
	nav.Move(types.DirRight)
	nav.Move(types.DirRight)

	history := nav.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(history))
	}

	got := []Transition{
		{From: history[0].From, To: history[0].To, Direction: history[0].Direction, Cause: history[0].Cause},
		{From: history[1].From, To: history[1].To, Direction: history[1].Direction, Cause: history[1].Cause},
	}
	want := []Transition{
		{From: ids[0], To: ids[1], Direction: "right", Cause: CauseMove},
		{From: ids[1], To: ids[2], Direction: "right", Cause: CauseMove},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if history[0].ID == "" || history[0].ID == history[1].ID {
		t.Errorf("transitions need distinct IDs, got %q and %q", history[0].ID, history[1].ID)
	}
}

func TestNavigator_WithLayout(t *testing.T) {
	f, ids := makeRow(t)

	// Swap b below a without touching the scene
	layout := layoutFunc(func(id types.NodeID) (types.Rect, bool) {
		if id == ids[1] {
			return rect(0, 20, 10, 10), true
		}
		return SceneLayout{Scene: f.scene}.Rect(id)
	})
	nav := f.navigator(WithLayout(layout))
	nav.Focus(ids[0])

	if !nav.Move(types.DirDown) || nav.Current() != ids[1] {
		t.Errorf("expected b (%d) below a, got %d", ids[1], nav.Current())
	}
}

func TestNavigator_Close(t *testing.T) {
	f, ids := makeRow(t)
	rec := &recorder{}
	nav := f.navigator(rec.options()...)
	nav.Focus(ids[0])
	rec.events = nil

	nav.Close()

	if nav.Current() != types.NoNode {
		t.Errorf("expected focus cleared, got %d", nav.Current())
	}
	if nav.Focus(ids[1]) || nav.Move(types.DirRight) {
		t.Error("closed navigator should ignore calls")
	}
	if _, err := nav.Mount(scene.NodeSpec{Name: "late"}); err == nil {
		t.Error("closed navigator should reject mounts")
	}
	if len(rec.events) != 0 {
		t.Errorf("closed navigator should not notify, got %v", rec.events)
	}
}
