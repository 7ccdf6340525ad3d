// Package source reads the accounting exports of a closing period and
// normalizes each of them into canonical records.
//
// Exports are comma separated text, either UTF-8 (with or without byte order
// mark) or the legacy Japanese Windows codepage. Each Parse function takes
// the decoded text of one export; ReadFile does the decoding.
package source
