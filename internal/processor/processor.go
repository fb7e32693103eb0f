package processor

// FileReport is the analysed result for one scanned file.
type FileReport struct {
	Path    string
	Records []SilenceRecord
}

// Silent reports whether any silence survived aggregation.
func (r FileReport) Silent() bool { return len(r.Records) > 0 }

// AnalyzeReport runs the per-file pipeline: parse the subprocess diagnostics,
// then aggregate the raw events into final records. It is pure: all
// subprocess and filesystem work happens in the caller, so the pipeline can
// be driven from any worker without shared state.
func AnalyzeReport(path, reportText string) (FileReport, error) {
	events, total, err := ParseReport(reportText)
	if err != nil {
		return FileReport{}, err
	}
	return FileReport{
		Path:    path,
		Records: Aggregate(events, total, path),
	}, nil
}
