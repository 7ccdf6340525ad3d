package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	mda "github.com/yanagawa000/ManagementDataAnalysis"
)

// Debug snapshot names.
const (
	SnapshotStoreCommon    = "store_common"
	SnapshotLocationCommon = "location_common"
	SnapshotAllocation     = "allocation"
)

// ExportOptions tells where to write the outputs of a run.
type ExportOptions struct {
	Output   string    // final CSV extract, required
	XLSX     string    // optional workbook copy
	DebugDir string    // optional directory of the debug snapshots
	Now      time.Time // timestamp of the snapshot names
}

// SnapshotPath returns the path of a debug snapshot.
func SnapshotPath(dir string, now time.Time, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.csv", now.Format("20060102_150405"), name))
}

// Export writes the extract and its optional copies. It returns
// mda.ErrNoRecords without writing the extract when the run produced nothing.
// Snapshot failures are only reported in the diagnostics.
func (res *Result) Export(opts ExportOptions) ([]string, error) {
	var written []string
	if opts.DebugDir != "" {
		snapshots := []struct {
			name    string
			records []mda.Tagged
		}{
			{SnapshotStoreCommon, res.Partitions.StoreCommon},
			{SnapshotLocationCommon, res.Partitions.LocationCommon},
			{SnapshotAllocation, res.Allocated},
		}
		for _, s := range snapshots {
			if len(s.records) == 0 {
				continue
			}
			path := SnapshotPath(opts.DebugDir, opts.Now, s.name)
			if err := mda.SaveTaggedCSV(path, s.records); err != nil {
				res.Diagnostics.Warnf("export", "snapshot %s not written: %v", s.name, err)
				continue
			}
			written = append(written, path)
		}
	}

	if len(res.Final) == 0 {
		return written, mda.ErrNoRecords
	}
	if err := mda.SaveCSV(opts.Output, res.Final); err != nil {
		return written, err
	}
	written = append(written, opts.Output)

	if opts.XLSX != "" {
		if err := mda.SaveXLSX(opts.XLSX, res.Final); err != nil {
			return written, err
		}
		written = append(written, opts.XLSX)
	}
	return written, nil
}
