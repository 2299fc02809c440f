package bootstrap

import "time"

// Status classifies the outcome of a run or of a single step.
type Status string

const (
	StatusUndef   Status = "UNDEF"
	StatusSuccess Status = "SUCCESS"
	StatusWarning Status = "WARNING"
	StatusError   Status = "ERROR"
)

// Result is the final outcome of a run. Exactly one Line() is emitted
// per invocation; Info may span multiple lines.
type Result struct {
	Status Status
	Info   string
}

// Line renders the machine-parseable "STATUS:info" report.
func (r Result) Line() string {
	return string(r.Status) + ":" + r.Info
}

// StepResult records one step's execution.
// Matches .ppenv/run/steps/<step>.json.
type StepResult struct {
	Step     string        `json:"step"`
	Status   Status        `json:"status"`
	Kind     Kind          `json:"kind,omitempty"`
	Note     string        `json:"note,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// LastRun summarizes the most recent run.
// Matches .ppenv/run/last-run.json.
type LastRun struct {
	Status    Status       `json:"status"`
	Machine   string       `json:"machine"`
	EnvDir    string       `json:"env_dir"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
	Warnings  []string     `json:"warnings,omitempty"`
	Steps     []StepResult `json:"steps"`
	Failed    string       `json:"failed,omitempty"`
}
