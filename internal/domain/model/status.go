// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// Status is the subscription state of an address on a list.
type Status string

// Statuses reported for a list member. StatusNotFound is local: it is what a
// status lookup yields when the list exists but holds no record for the address.
const (
	StatusNotFound      Status = "not found"
	StatusSubscribed    Status = "subscribed"
	StatusUnsubscribed  Status = "unsubscribed"
	StatusCleaned       Status = "cleaned"
	StatusPending       Status = "pending"
	StatusTransactional Status = "transactional"
	StatusArchived      Status = "archived"
)

// Reported reports whether the provider may legitimately return s for a member record.
func (s Status) Reported() bool {
	switch s {
	case StatusSubscribed, StatusUnsubscribed, StatusCleaned, StatusPending,
		StatusTransactional, StatusArchived:
		return true
	}
	return false
}

// Assignable reports whether s may be written on a member payload.
func (s Status) Assignable() bool {
	switch s {
	case StatusSubscribed, StatusUnsubscribed, StatusCleaned, StatusPending:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// confirmStatus maps a confirm flag to the status a new or updated member gets.
func confirmStatus(confirm bool) Status {
	if confirm {
		return StatusPending
	}
	return StatusSubscribed
}
