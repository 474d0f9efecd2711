package domain

import (
	"testing"
	"time"
)

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2000-04-06")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2000-04-06" {
		t.Fatalf("FormatDate: got=%q", got)
	}
	if _, err := ParseDate("06/04/2000"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestNewDateDropsClock(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := NewDate(time.Date(2020, 5, 10, 23, 59, 0, 0, loc))
	got := time.Time(d)
	if got.Hour() != 0 || got.Day() != 10 || got.Location() != time.UTC {
		t.Fatalf("unexpected date: %s", got)
	}
}

func TestCloneIsDetached(t *testing.T) {
	p := &Person{ID: 1, Name: "Ana"}
	cp := p.Clone()
	cp.Name = "Bia"
	if p.Name != "Ana" {
		t.Fatalf("clone shares state")
	}
	var nilRec *PersonRecord
	if nilRec.Clone() != nil {
		t.Fatalf("nil clone should be nil")
	}
}
