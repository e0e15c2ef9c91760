// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/utils"
)

// List is the subset of a list record the client reads.
type List struct {
	ID          string         `json:"id"`
	WebID       int64          `json:"web_id,omitempty"`
	Name        string         `json:"name"`
	DateCreated string         `json:"date_created,omitempty"`
	Stats       map[string]any `json:"stats,omitempty"`
}

// ListCollection is the response of the list collection endpoint.
type ListCollection struct {
	Lists      []List `json:"lists"`
	TotalItems int    `json:"total_items"`
}

// ListsQuery holds the query parameters of the list collection endpoint.
type ListsQuery struct {
	Count         int    `url:"count,omitempty"`
	Offset        int    `url:"offset,omitempty"`
	Fields        string `url:"fields,omitempty"`
	ExcludeFields string `url:"exclude_fields,omitempty"`
	Email         string `url:"email,omitempty"`
}

// MemberRecord is a member as returned by the provider.
type MemberRecord struct {
	ID           string          `json:"id"`
	EmailAddress string          `json:"email_address"`
	UniqueEmail  string          `json:"unique_email_id,omitempty"`
	Status       Status          `json:"status"`
	EmailType    string          `json:"email_type,omitempty"`
	MergeFields  map[string]any  `json:"merge_fields,omitempty"`
	Interests    map[string]bool `json:"interests,omitempty"`
	Language     string          `json:"language,omitempty"`
	VIP          bool            `json:"vip,omitempty"`
	Location     *Location       `json:"location,omitempty"`
	ListID       string          `json:"list_id,omitempty"`
	Tags         []Tag           `json:"tags,omitempty"`
}

// Tag is a tag attached to a member.
type Tag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	DateAdded string `json:"date_added"`
}

// Added parses DateAdded. It returns nil when the provider sent no date.
func (t Tag) Added() (*time.Time, error) {
	return utils.ParseTimestampPtr(&t.DateAdded)
}

// TagCollection is the response of the member tags endpoint.
type TagCollection struct {
	Tags       []Tag `json:"tags"`
	TotalItems int   `json:"total_items"`
}

// Names returns the tag names in provider order.
func (c TagCollection) Names() []string {
	names := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// TagStatus marks a tag as attached or detached in a tag update.
type TagStatus string

// Tag update markers.
const (
	TagActive   TagStatus = "active"
	TagInactive TagStatus = "inactive"
)

// TagUpdate is one entry of a member tag update request.
type TagUpdate struct {
	Name   string    `json:"name"`
	Status TagStatus `json:"status"`
}
