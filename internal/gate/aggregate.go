package gate

// shortHashLen is how many leading hash characters participate in the
// staleness comparison.
const shortHashLen = 7

// StalenessResult compares the report's repository hash with the live one
type StalenessResult struct {
	IsStale     bool
	ReportHash  string
	CurrentHash string
}

// CheckStaleness compares the first seven characters of each hash. The
// report is stale only when both sides are non-empty and differ: absence
// of information must never manufacture a warning.
func CheckStaleness(reportHash, currentHash string) StalenessResult {
	reportShort := shorten(reportHash)
	currentShort := shorten(currentHash)

	return StalenessResult{
		IsStale:     reportShort != "" && currentShort != "" && reportShort != currentShort,
		ReportHash:  reportShort,
		CurrentHash: currentShort,
	}
}

func shorten(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}

// Failure identifies the earliest failing layer of a report
type Failure struct {
	Layer   Layer
	Message string
}

// FirstFailingLayer scans the pipeline in ascending layer order and
// returns the first layer recorded as FAIL. Unset and NOT_RUN layers
// are skipped, not treated as failures, and do not hide a later
// failure. Returns nil when no layer fails.
func FirstFailingLayer(report *Report) *Failure {
	if report == nil {
		return nil
	}

	for _, layer := range Layers {
		result, ok := report.Layers[layer.Name]
		if !ok || result.Status != StatusFail {
			continue
		}

		message := result.Message
		if message == "" {
			message = result.Output
		}
		if message == "" {
			message = "Gate failed"
		}

		return &Failure{Layer: layer, Message: message}
	}

	return nil
}
