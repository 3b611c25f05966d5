package reconcile

import "testing"

func TestSuggest(t *testing.T) {
	pool := []string{"Julio Rodriguez", "Julio Rodrigues", "Aaron Judge"}

	got := Suggest("Julio Rodríguez", pool, 5)
	if len(got) != 2 {
		t.Fatalf("Suggest returned %d suggestions, want 2: %v", len(got), got)
	}
	if got[0].Name != "Julio Rodriguez" || got[0].Distance != 0 {
		t.Errorf("closest suggestion = %+v, want Julio Rodriguez at distance 0", got[0])
	}
	if got[1].Name != "Julio Rodrigues" {
		t.Errorf("second suggestion = %+v, want Julio Rodrigues", got[1])
	}
}

func TestSuggestLimits(t *testing.T) {
	pool := []string{"Jon Gray", "Josh Gray", "Jose Gray"}

	if got := Suggest("Jon Grey", pool, 1); len(got) != 1 {
		t.Errorf("Suggest max=1 returned %d suggestions", len(got))
	}
	if got := Suggest("", pool, 5); got != nil {
		t.Errorf("Suggest on empty target = %v, want nil", got)
	}
	if got := Suggest("Jon Gray", pool, 0); got != nil {
		t.Errorf("Suggest max=0 = %v, want nil", got)
	}
}
