package domain

import (
	"encoding/json"
	"time"
)

// UserInfo is what the admin API returns for a single user,
// only Name is shown on the shared libraries page.
type UserInfo struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	IsActive     bool   `json:"is_active"`
	IsStaff      bool   `json:"is_staff"`
	// quota in bytes, negative values are the platform's "unlimited" markers
	QuotaTotal int64  `json:"quota_total"`
	QuotaUsage int64  `json:"quota_usage"`
	CreateTime string `json:"create_time,omitempty"`
}

// RepoShareItem is one library shared with the user.
type RepoShareItem struct {
	ID string `json:"id"`
	// empty when the library metadata could not be resolved (a broken library)
	Name       string `json:"name"`
	Encrypted  bool   `json:"encrypted"`
	OwnerEmail string `json:"owner_email"`
	OwnerName  string `json:"owner_name"`
	// size in bytes
	Size       int64     `json:"size"`
	LastModify Timestamp `json:"last_modify"`
}

// IsBroken reports whether the share points to a library whose name is missing
func (r RepoShareItem) IsBroken() bool {
	return r.Name == ""
}

// SharedRepos is the envelope of the be-shared repos listing.
type SharedRepos struct {
	RepoList []RepoShareItem `json:"repo_list"`
}

// Timestamp decodes the platform's ISO 8601 times, the platform sends "" when it
// could not format one. Empty, null & unparseable values decode to the zero time.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = time.Time{}
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
	}
	return nil
}
