package models

import "testing"

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("19.995")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if m.String() != "20.00" {
		t.Fatalf("expected rounded 20.00, got %s", m.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected parse error for invalid amount")
	}
}
