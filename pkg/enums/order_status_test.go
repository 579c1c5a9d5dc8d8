package enums

import "testing"

func TestTrackingChainWalk(t *testing.T) {
	status := OrderStatusOrdered
	steps := 0
	for {
		next, ok := status.Next()
		if !ok {
			break
		}
		status = next
		steps++
	}
	if status != OrderStatusDelivered {
		t.Fatalf("chain should end at Delivered, got %s", status)
	}
	if steps != len(TrackingStages)-1 {
		t.Fatalf("expected %d steps, got %d", len(TrackingStages)-1, steps)
	}
}

func TestAlternateTerminalsHaveNoNext(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusPickedUp, OrderStatusCanceled} {
		if _, ok := status.Next(); ok {
			t.Fatalf("%s should not advance", status)
		}
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
}

func TestStageIndexOrdering(t *testing.T) {
	prev := -1
	for _, stage := range TrackingStages {
		idx := stage.StageIndex()
		if idx <= prev {
			t.Fatalf("stage %s index %d not increasing", stage, idx)
		}
		prev = idx
	}
	if OrderStatusPickedUp.StageIndex() != -1 {
		t.Fatal("alternate terminal should not be in the chain")
	}
}

func TestParseOrderStatus(t *testing.T) {
	parsed, err := ParseOrderStatus("Courier Hub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != OrderStatusCourierHub {
		t.Fatalf("got %s", parsed)
	}
	if _, err := ParseOrderStatus("Teleported"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
