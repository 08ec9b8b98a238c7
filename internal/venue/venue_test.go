package venue

import (
	"strings"
	"testing"
)

func TestLimit(t *testing.T) {
	n, err := Limit("PRL")
	if err != nil {
		t.Fatalf("Limit(PRL) error = %v", err)
	}
	if n != 3750 {
		t.Fatalf("Limit(PRL) = %d, want 3750", n)
	}
}

func TestLimitUnknownVenue(t *testing.T) {
	_, err := Limit("Nature")
	if err == nil {
		t.Fatal("unknown venue should be an error")
	}
	for _, known := range Known() {
		if !strings.Contains(err.Error(), known) {
			t.Fatalf("error should list known venue %s: %v", known, err)
		}
	}
}

func TestKnownSorted(t *testing.T) {
	ks := Known()
	if len(ks) == 0 {
		t.Fatal("no known venues")
	}
	for i := 1; i < len(ks); i++ {
		if ks[i-1] >= ks[i] {
			t.Fatalf("Known() not sorted: %v", ks)
		}
	}
}
