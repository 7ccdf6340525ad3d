package source

import (
	"errors"
	"strings"
	"testing"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

// titled prefixes a table with n title lines.
func titled(n int, table string) []byte {
	return []byte(strings.Repeat("推移表 貸借対照表,,\n", n) + table)
}

const trialBalanceTable = `部門コード,部門名,勘定科目コード,勘定科目名,前残,2024年07月度,2024年08月度,合計
H102200,本店特販部,BS1001,現金,999,"1,000",1100,x
H102200,本店特販部,BS1043,★商品,0,500,600,x
S202100,札幌営業,BS1043,★商品,0,50,60,x
S202100,札幌営業,BS2003,★支払手形,0,7,8,x
S202100,札幌営業,PL4001,売上高,0,9999,9999,x
,,BS1001,現金,0,1,1,x
`

func TestParseTrialBalance(t *testing.T) {
	tb, ds, err := ParseTrialBalance(titled(9, trialBalanceTable))
	if err != nil {
		t.Fatal(err)
	}

	aug := date.New(2024, 8, 1)
	got := tb.Period(aug)
	if len(got) != 1 {
		t.Fatalf("got %d records for August, want 1: %+v", len(got), got)
	}
	want := mda.Record{Date: aug, DeptCode: "H102200", DeptName: "本店特販部", AccountCode: "BS1001", AccountName: "現金", Amount: mda.ParseAmount("1100")}
	if r := got[0]; r.Date != want.Date || r.DeptCode != want.DeptCode || r.AccountCode != want.AccountCode || !r.Amount.Equal(want.Amount) {
		t.Errorf("August record = %+v, want %+v", r, want)
	}
	if len(tb.Records) != 2 {
		t.Errorf("got %d records, want 2 (one per month)", len(tb.Records))
	}
	if jul := tb.Period(date.New(2024, 7, 1)); len(jul) != 1 || !jul[0].Amount.Equal(mda.ParseAmount("1000")) {
		t.Errorf("July records = %+v", jul)
	}

	total, ok := tb.MerchandiseTotal(aug)
	if !ok || !total.Equal(mda.ParseAmount("660")) {
		t.Errorf("MerchandiseTotal(August) = %s, %v; want 660", total, ok)
	}
	if _, ok := tb.MerchandiseTotal(date.New(2024, 9, 1)); ok {
		t.Error("MerchandiseTotal(September) found")
	}
	if !ds.Contains(mda.Warn, `column "合計" ignored`) {
		t.Errorf("no warning about the total column in %v", ds)
	}
	for _, r := range tb.Records {
		if r.DeptCode == "" || !strings.HasPrefix(r.AccountCode, "BS") {
			t.Errorf("unexpected record %+v", r)
		}
	}
}

func TestParseTrialBalanceErrors(t *testing.T) {
	testCases := []struct {
		name  string
		text  []byte
		check func(error) bool
	}{
		{
			name:  "missing columns",
			text:  titled(9, "部門,勘定科目コード,2024年08月度\nH1,BS1,1\n"),
			check: func(err error) bool { var m *MissingColumnsError; return errors.As(err, &m) },
		},
		{
			name:  "no balance sheet account",
			text:  titled(9, "部門コード,勘定科目コード,2024年08月度\nH1,PL1,1\n"),
			check: func(err error) bool { return errors.Is(err, ErrEmpty) },
		},
		{
			name:  "only titles",
			text:  titled(9, ""),
			check: func(err error) bool { return errors.Is(err, ErrEmpty) },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseTrialBalance(tc.text)
			if !tc.check(err) {
				t.Errorf("ParseTrialBalance() error = %v", err)
			}
		})
	}
}
