package mda

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

func extract() []Tagged {
	records := []Tagged{
		{Record: Record{Date: aug24, DeptCode: "S202100", DeptName: "札幌営業", AccountCode: "BS1013", AccountName: "★受取手形", Amount: D("1200")}},
		{Record: Record{Date: aug24, DeptCode: "H102200", DeptName: "本店特販部", Amount: D("-480.25")}, Class1: "運転資本", Class2: "運転資本_全店共通", Location: "本店"},
		{Record: Record{Date: date.New(2024, 7, 1), DeptCode: "H101100", DeptName: "名前, \"引用\"", AccountCode: "BS2003", AccountName: "★支払手形", Amount: D("0.1")}},
		{Record: Record{DeptCode: "F602100", AccountCode: "BS1043", Amount: D("7")}},
	}
	Sort(records)
	return records
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	if err := WriteCSV(&b, extract()); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("\xef\xbb\xbf")) {
		t.Error("extract has no byte order mark")
	}
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(b.String(), "\ufeff"), "\n"), "\n")
	if lines[0] != "日付,部門コード,部門名,勘定科目コード,勘定科目名,金額" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `2024-07-01,H101100,"名前, ""引用""",BS2003,★支払手形,0.1` {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[len(lines)-1] != ",F602100,,BS1043,,7" {
		t.Errorf("undated row = %q", lines[len(lines)-1])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	want := extract()
	var b bytes.Buffer
	if err := WriteCSV(&b, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCSV(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("read %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i].Record, want[i].Record
		if g.Date != w.Date || g.DeptCode != w.DeptCode || g.DeptName != w.DeptName ||
			g.AccountCode != w.AccountCode || g.AccountName != w.AccountName || !g.Amount.Equal(w.Amount) {
			t.Errorf("row %d = %+v, want %+v", i, g, w)
		}
	}
}

func TestTaggedCSVRoundTrip(t *testing.T) {
	want := extract()
	var b bytes.Buffer
	if err := WriteTaggedCSV(&b, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadCSV(&b)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if got[i].Class1 != want[i].Class1 || got[i].Class2 != want[i].Class2 || got[i].Location != want[i].Location {
			t.Errorf("row %d tags = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing column", input: "日付,部門コード\n2024-08-01,H102200\n"},
		{name: "bad date", input: "日付,部門コード,部門名,勘定科目コード,勘定科目名,金額\nsoon,H102200,,,,1\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tc.input)); err == nil {
				t.Error("ReadCSV() succeeded, want an error")
			}
		})
	}
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "combined_data.csv")

	if err := SaveCSV(path, nil); !errors.Is(err, ErrNoRecords) {
		t.Errorf("SaveCSV(empty) error = %v, want ErrNoRecords", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("empty extract was written: %v", err)
	}

	if err := SaveCSV(path, extract()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(extract()) {
		t.Errorf("read back %d rows, want %d", len(got), len(extract()))
	}
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract.xlsx")
	if err := SaveXLSX(path, nil); !errors.Is(err, ErrNoRecords) {
		t.Errorf("SaveXLSX(empty) error = %v, want ErrNoRecords", err)
	}
	records := extract()
	if err := SaveXLSX(path, records); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("sheet has %d rows, want %d", len(rows), len(records)+1)
	}
	if strings.Join(rows[0], ",") != strings.Join(Columns, ",") {
		t.Errorf("header = %q", rows[0])
	}
	if rows[1][1] != records[0].DeptCode {
		t.Errorf("first department = %q, want %q", rows[1][1], records[0].DeptCode)
	}
	if got, err := f.GetCellValue(SheetName, "F3"); err != nil || got != "-480.25" {
		t.Errorf("F3 = %q, %v; want -480.25", got, err)
	}
}
