package installer

// Overall classifies a whole run from its per-tool outcomes.
type Overall string

const (
	OverallSuccess        Overall = "success"
	OverallPartialFailure Overall = "partial-failure"
	OverallNoOp           Overall = "no-op"
	OverallTotalFailure   Overall = "total-failure"
)

// Report aggregates one orchestration run across all selected tools.
// Warnings carries the non-fatal degradations (permission propagation,
// exposure) that do not affect any tool's own status.
type Report struct {
	Results  []Result `json:"results"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r Report) byStatus(s Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == s {
			out = append(out, res)
		}
	}
	return out
}

// Installed returns the results that ended up usable.
func (r Report) Installed() []Result { return r.byStatus(StatusInstalled) }

// Skipped returns the results excluded by configuration.
func (r Report) Skipped() []Result { return r.byStatus(StatusSkipped) }

// Failed returns the results that could not be installed or verified.
func (r Report) Failed() []Result { return r.byStatus(StatusFailed) }

// Overall derives the run classification. Skips never count as failures:
// a run where everything was excluded is a no-op, not an error.
func (r Report) Overall() Overall {
	installed := len(r.Installed())
	failed := len(r.Failed())
	switch {
	case installed > 0 && failed == 0:
		return OverallSuccess
	case installed > 0:
		return OverallPartialFailure
	case failed == 0:
		return OverallNoOp
	default:
		return OverallTotalFailure
	}
}

// ExitCode maps the overall status to a process exit code for the CLI.
func (r Report) ExitCode() int {
	switch r.Overall() {
	case OverallSuccess, OverallNoOp:
		return 0
	default:
		return 1
	}
}
