package enums

import "fmt"

// SiteStatus reflects whether a job site is still running.
type SiteStatus string

const (
	SiteStatusActive    SiteStatus = "active"
	SiteStatusCompleted SiteStatus = "completed"
)

var validSiteStatuses = []SiteStatus{
	SiteStatusActive,
	SiteStatusCompleted,
}

// IsValid reports whether the value matches the canonical status enum.
func (s SiteStatus) IsValid() bool {
	for _, candidate := range validSiteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSiteStatus converts raw input into SiteStatus.
func ParseSiteStatus(value string) (SiteStatus, error) {
	for _, candidate := range validSiteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid site status %q", value)
}
