package models

// SweepReport summarizes the outcome of a reconciliation sweep.
type SweepReport struct {
	// Scope is "all" or the single record id that was swept.
	Scope string `json:"scope"`

	// TotalChecked is the number of records examined.
	TotalChecked int `json:"total_checked"`

	// Fixed counts records whose state was corrected during the sweep.
	Fixed int `json:"fixed"`

	// Orphaned counts records transitioned to error because the provider
	// no longer lists their asset.
	Orphaned int `json:"orphaned"`

	// Consistent counts records that already matched the provider.
	Consistent int `json:"consistent"`

	// NeedsUpload counts records demoted to needs_upload (ready with no asset).
	NeedsUpload int `json:"needs_upload"`

	// Failed counts records whose reconciliation errored; the sweep continues
	// past them and retries on the next pass.
	Failed int `json:"failed"`

	// Errors holds per-record failure descriptions for the Failed count.
	Errors []string `json:"errors,omitempty"`

	GeneratedAt   string `json:"generated_at"`
	ExecutionTime string `json:"execution_time"`
}

// RepairReport summarizes a miskeyed-record repair pass.
type RepairReport struct {
	// TotalMiskeyed is the number of candidate records found.
	TotalMiskeyed int `json:"total_miskeyed"`

	// Repaired counts records re-keyed under their provider asset id.
	Repaired int `json:"repaired"`

	// Skipped counts records that turned out to already be keyed correctly.
	Skipped int `json:"skipped"`

	// Failed counts records whose repair errored; re-running the repairer
	// picks them up again.
	Failed int `json:"failed"`

	// Errors holds per-record failure descriptions for the Failed count.
	Errors []string `json:"errors,omitempty"`

	GeneratedAt   string `json:"generated_at"`
	ExecutionTime string `json:"execution_time"`
}
