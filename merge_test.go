package mda

import (
	"testing"

	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

func TestMerge(t *testing.T) {
	locations := []Location{
		{DeptCode: "H102200", DeptName: "本店特販部", Location: "本店"},
		{DeptCode: "S202100", Location: "札幌"},
	}
	normal := []Tagged{
		{Record: Record{Date: aug24, DeptCode: "S202100", DeptName: "札幌営業", Amount: D("1")}, Location: "stale"},
		{Record: Record{Date: aug24, DeptCode: "Z000001", DeptName: "その他", Amount: D("2")}, Location: "stale"},
	}
	allocated := []Tagged{
		{Record: Record{Date: aug24, DeptCode: "H102200", Amount: D("480")}, Class1: "運転資本", Class2: "運転資本_全店共通"},
	}

	got := Merge(normal, allocated, locations)

	want := []struct {
		dept, name, location string
	}{
		{"H102200", "本店特販部", "本店"},
		{"S202100", "札幌営業", "札幌"},
		{"Z000001", "その他", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("Merge() returned %d rows, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].DeptCode != w.dept || got[i].DeptName != w.name || got[i].Location != w.location {
			t.Errorf("row %d = %s %s @%q, want %s %s @%q", i, got[i].DeptCode, got[i].DeptName, got[i].Location, w.dept, w.name, w.location)
		}
	}
	if got[0].Class2 != "運転資本_全店共通" {
		t.Errorf("allocated tags lost: %+v", got[0])
	}
	if normal[0].Location != "stale" {
		t.Error("Merge() modified its input")
	}
}

func TestSort(t *testing.T) {
	jul := date.New(2024, 7, 1)
	records := []Tagged{
		{Record: Record{DeptCode: "A", Amount: D("1")}},
		{Record: Record{Date: aug24, DeptCode: "B", Amount: D("2")}},
		{Record: Record{Date: aug24, Amount: D("3")}},
		{Record: Record{Date: jul, DeptCode: "C", Amount: D("4")}},
		{Record: Record{Date: aug24, DeptCode: "A", Amount: D("5")}},
		{Record: Record{Date: aug24, DeptCode: "A", Amount: D("6")}},
	}
	Sort(records)

	want := []string{"4", "5", "6", "2", "3", "1"}
	for i, w := range want {
		if got := records[i].Amount.String(); got != w {
			t.Errorf("position %d holds amount %s, want %s", i, got, w)
		}
	}
}
