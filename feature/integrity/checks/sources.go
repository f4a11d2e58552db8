package checks

import "os"

// SourcesReport lists configured source files that are absent or not
// regular files.
type SourcesReport struct {
	Checked int      `json:"checked"`
	Missing []string `json:"missing"`
	Status  string   `json:"status"` // "ok", "error"
}

// CheckSources stats every configured source path. A run would fail on
// any path reported here.
func CheckSources(paths []string) *SourcesReport {
	report := &SourcesReport{Checked: len(paths), Missing: []string{}, Status: "ok"}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			report.Missing = append(report.Missing, path)
			report.Status = "error"
		}
	}
	return report
}
