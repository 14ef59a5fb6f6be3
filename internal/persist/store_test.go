package persist

import (
	"bytes"
	"testing"
)

func TestMemStore_RoundTrip(t *testing.T) {
	s := NewMemStore()

	if _, ok, err := s.Get("answers/u1"); ok || err != nil {
		t.Fatalf("Empty store: ok=%v err=%v", ok, err)
	}

	if err := s.Set("answers/u1", []byte(`{"1":[10]}`)); err != nil {
		t.Fatal(err)
	}
	value, ok, err := s.Get("answers/u1")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(value, []byte(`{"1":[10]}`)) {
		t.Errorf("Got %q", value)
	}

	if err := s.Set("answers/u1", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	value, _, _ = s.Get("answers/u1")
	if !bytes.Equal(value, []byte(`{}`)) {
		t.Errorf("Overwrite lost: %q", value)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMemStore_Delete(t *testing.T) {
	s := NewMemStore()
	s.Set("k", []byte("v"))

	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("Key should be gone")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Deleting an absent key: %v", err)
	}
}

func TestMemStore_ValueIsolated(t *testing.T) {
	s := NewMemStore()
	original := []byte("abc")
	s.Set("k", original)
	original[0] = 'x'

	value, _, _ := s.Get("k")
	if !bytes.Equal(value, []byte("abc")) {
		t.Errorf("Caller mutation leaked into the store: %q", value)
	}

	value[0] = 'y'
	again, _, _ := s.Get("k")
	if !bytes.Equal(again, []byte("abc")) {
		t.Errorf("Returned slice aliases the store: %q", again)
	}
}
