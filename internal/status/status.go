// Package status derives campaign and project lifecycle labels from date
// ranges. Nothing here is persisted; callers recompute on every read.
package status

import "time"

type CampaignStatus string

const (
	CampaignPending   CampaignStatus = "Pending"
	CampaignLive      CampaignStatus = "Live"
	CampaignCompleted CampaignStatus = "Completed"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "Not Started"
	ProjectPending    ProjectStatus = "Pending"
	ProjectActive     ProjectStatus = "Active"
	ProjectEnded      ProjectStatus = "Ended"
)

// ForCampaign maps a campaign's date window and a reference date to its
// lifecycle label. Both boundary days count as Live.
func ForCampaign(start, end, today time.Time) CampaignStatus {
	start, end, today = dateOnly(start), dateOnly(end), dateOnly(today)

	switch {
	case today.Before(start):
		return CampaignPending
	case today.After(end):
		return CampaignCompleted
	default:
		return CampaignLive
	}
}

// ForProject maps the outer span of a project's campaigns to its lifecycle
// label. Nil bounds mean the project has no campaigns. The project counts as
// Active for the whole outer span, including gap days between campaigns.
func ForProject(earliestStart, latestEnd *time.Time, today time.Time) ProjectStatus {
	if earliestStart == nil || latestEnd == nil {
		return ProjectNotStarted
	}

	start, end, day := dateOnly(*earliestStart), dateOnly(*latestEnd), dateOnly(today)

	switch {
	case day.Before(start):
		return ProjectPending
	case day.After(end):
		return ProjectEnded
	default:
		return ProjectActive
	}
}

// ValidDateRange reports whether start strictly precedes end at day
// granularity.
func ValidDateRange(start, end time.Time) bool {
	return dateOnly(start).Before(dateOnly(end))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
