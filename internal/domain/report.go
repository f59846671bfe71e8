package domain

// Action is what a single invocation ended up doing.
type Action string

const (
	ActionPosted  Action = "posted"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
	ActionDryRun  Action = "dry-run"
)

// PublishResult holds the identifiers returned by the platform.
type PublishResult struct {
	MediaID string
	PostID  string
}

// RunReport summarises one invocation for the activity log.
type RunReport struct {
	Action      Action
	Stage       string
	Percent     int
	Fraction    float64
	LastPercent *int
	Caption     string
	ImagePath   string
	MediaID     string
	PostID      string
	Reason      string
	LocalTime   string

	// ArchiveLocation or ArchiveError is set when an archive is configured.
	ArchiveLocation string
	ArchiveError    string
}
