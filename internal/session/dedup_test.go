package session

import "testing"

func TestFilterAdmitRecordsNewIDs(t *testing.T) {
	f := NewFilter()
	if !f.Admit("e1") {
		t.Fatal("first delivery must pass")
	}
	if f.Admit("e1") {
		t.Fatal("redelivery must be rejected")
	}
	if !f.Admit("e2") {
		t.Fatal("distinct id must pass")
	}
	if f.Size() != 2 {
		t.Fatalf("size = %d", f.Size())
	}
}

func TestFilterEmptyIDAlwaysPasses(t *testing.T) {
	f := NewFilter()
	for i := 0; i < 3; i++ {
		if !f.Admit("") {
			t.Fatal("events without an id are never deduplicated")
		}
	}
	if f.Size() != 0 {
		t.Fatalf("size = %d, empty ids must not be recorded", f.Size())
	}
}

func TestFilterReset(t *testing.T) {
	f := NewFilter()
	f.Admit("e1")
	f.Reset()
	if !f.Admit("e1") {
		t.Fatal("reset must forget seen ids")
	}
}

func TestFilterNilReceiver(t *testing.T) {
	var f *Filter
	if !f.Admit("e1") {
		t.Fatal("nil filter admits everything")
	}
	f.Reset()
}
