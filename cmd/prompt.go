package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yanagawa000/ManagementDataAnalysis/date"
)

// askPeriod asks for the closing period until a valid YYYY/MM is entered.
func askPeriod(in io.Reader, out io.Writer) (date.Date, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "基準日を入力してください (例: 2024/08): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return date.Date{}, err
			}
			return date.Date{}, io.ErrUnexpectedEOF
		}
		period, err := date.ParsePeriod(strings.TrimSpace(scanner.Text()))
		if err == nil {
			return period, nil
		}
		fmt.Fprintln(out, "エラー: 無効な日付形式です。'YYYY/MM'の形式で入力してください。")
	}
}
