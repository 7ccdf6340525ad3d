// Package mda implements the monthly balance-sheet extract of the management
// data analysis tool. It turns the accounting exports of one closing period
// into a single long-format table, one row per department and account.
//
// The core functionalities include:
//   - Record model: the canonical row (date, department, account, amount)
//     shared by every source normalizer, and its tagged form carrying the
//     classification and location of the row.
//   - Classification & location joining: best-effort left joins against the
//     two static reference tables.
//   - Ratio table: the reshaped allocation weights normalized twice, once
//     across all departments (global ratio) and once within each physical
//     location group (group ratio).
//   - Allocation: distribution of the store-wide and location-wide common
//     balances to the departments, per classification pair.
//   - Merge & export: the final sorted extract as BOM-prefixed UTF-8 CSV,
//     readable by spreadsheets, and its optional workbook copy.
//
// Every stage returns its result together with Diagnostics instead of
// printing, so that callers decide how to report them.
package mda
