package view_test

import (
	"testing"

	"github.com/rawview/rawview/marshal"
	"github.com/rawview/rawview/view"
)

func TestEvents_SubscriptionOrder(t *testing.T) {
	p := attachPlayer(t)

	var order []int
	p.OnModelChanged(func() { order = append(order, 1) })
	p.OnModelChanged(func() { order = append(order, 2) })
	p.OnModelChanged(func() { order = append(order, 3) })

	if err := p.SetModel(playerSnapshot("a", 1, 2, marshal.RGB{})); err != nil {
		t.Fatal(err)
	}

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("notification order = %v, want [1 2 3]", order)
	}
}

func TestEvents_Unsubscribe(t *testing.T) {
	p := attachPlayer(t)

	var order []int
	first := p.OnPropertyChanged(func(string) { order = append(order, 1) })
	p.OnPropertyChanged(func(string) { order = append(order, 2) })

	p.Unsubscribe(first)

	p.Name = "x"
	p.Changed("Name")

	for _, id := range order {
		if id == 1 {
			t.Fatal("unsubscribed handler was notified")
		}
	}
	if len(order) == 0 {
		t.Error("remaining handler was not notified")
	}
}

func TestEvents_SelfUnsubscribeDuringNotify(t *testing.T) {
	p := attachPlayer(t)

	var calls []int
	var first view.Subscription
	first = p.OnPropertyChanged(func(string) {
		calls = append(calls, 1)
		p.Unsubscribe(first)
	})
	p.OnPropertyChanged(func(string) { calls = append(calls, 2) })
	p.OnPropertyChanged(func(string) { calls = append(calls, 3) })

	p.Name = "x"
	p.Changed("Name")

	// Removing a handler mid-round must not skip or repeat the others.
	if len(calls) != 3 || calls[0] != 1 || calls[1] != 2 || calls[2] != 3 {
		t.Fatalf("calls = %v, want [1 2 3]", calls)
	}

	calls = nil
	p.Name = "y"
	p.Changed("Name")
	if len(calls) != 2 || calls[0] != 2 || calls[1] != 3 {
		t.Errorf("calls after unsubscribe = %v, want [2 3]", calls)
	}
}

func TestNode_ParentAndChild(t *testing.T) {
	p := attachPlayer(t)
	if err := p.SetModel(playerSnapshot("a", 1, 2, marshal.RGB{})); err != nil {
		t.Fatal(err)
	}

	parent, prop := p.Stats.Parent()
	if parent != view.Viewer(p) || prop != "Stats" {
		t.Errorf("Parent = %v %q", parent, prop)
	}

	if root, _ := p.Parent(); root != nil {
		t.Error("root node should have no parent")
	}

	if child := p.Child("Stats"); child != view.Viewer(p.Stats) {
		t.Error("Child lookup returned a different node")
	}
	if p.Child("Name") != nil {
		t.Error("terminal property should have no child")
	}
}
