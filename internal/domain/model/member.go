// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models shared by the gateway and the resolver.
package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"maps"
	"net/mail"
	"strings"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
)

// Email types accepted by WithEmailType.
const (
	EmailTypeHTML = "html"
	EmailTypeText = "text"
)

// Location holds the geo coordinates of a member.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Member is an immutable member payload. Every With* setter returns a copy with
// one field replaced, so a Member can be shared between goroutines and reused
// as a template.
type Member struct {
	email       string
	hash        string
	status      Status
	statusIfNew Status
	emailType   string
	mergeFields map[string]any
	interests   map[string]bool
	language    string
	vip         *bool
	location    *Location
}

// NormalizeEmail lowercases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SubscriberHash returns the provider's member identifier for an address:
// the hex MD5 of the normalized email.
func SubscriberHash(email string) string {
	sum := md5.Sum([]byte(NormalizeEmail(email)))
	return hex.EncodeToString(sum[:])
}

// ValidateEmail checks that a normalized address is a bare ASCII addr-spec:
// a dot-atom or quoted local part and a dotted hostname whose labels are
// letters, digits and inner hyphens. IP literal domains are refused.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.NewInvalidInput("email address is required")
	}
	invalid := errors.NewInvalidInput(fmt.Sprintf("invalid email address: %s", email))

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return invalid
	}
	local, domain := email[:at], email[at+1:]
	if !validLocalPart(local) || !validDomain(domain) {
		return invalid
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.NewInvalidInput(fmt.Sprintf("invalid email address: %s", email), err)
	}
	// reject display-name and angle-bracket forms
	if addr.Name != "" || !strings.HasSuffix(addr.Address, "@"+domain) {
		return invalid
	}
	return nil
}

const atext = "!#$%&'*+/=?^_`{|}~-"

func validLocalPart(local string) bool {
	if len(local) > 64 {
		return false
	}
	if len(local) >= 2 && local[0] == '"' && local[len(local)-1] == '"' {
		return validQuotedString(local[1 : len(local)-1])
	}
	if local[0] == '.' || local[len(local)-1] == '.' || strings.Contains(local, "..") {
		return false
	}
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isAlnum(c) && c != '.' && strings.IndexByte(atext, c) < 0 {
			return false
		}
	}
	return true
}

// validQuotedString checks the content between the quotes of a quoted local part
func validQuotedString(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			i++
			if i == len(s) || s[i] < 0x20 || s[i] > 0x7e {
				return false
			}
		case c == '"', c < 0x20, c > 0x7e:
			return false
		}
	}
	return true
}

func validDomain(domain string) bool {
	if len(domain) > 253 || !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			if !isAlnum(label[i]) && label[i] != '-' {
				return false
			}
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// NewMember builds a member for the given address. New members default to
// double opt-in (status_if_new pending).
func NewMember(email string) (Member, error) {
	normalized := NormalizeEmail(email)
	if err := ValidateEmail(normalized); err != nil {
		return Member{}, err
	}
	return Member{
		email:       normalized,
		hash:        SubscriberHash(normalized),
		statusIfNew: StatusPending,
	}, nil
}

// Email returns the normalized address.
func (m Member) Email() string {
	return m.email
}

// Identifier returns the subscriber hash used as the remote resource key.
func (m Member) Identifier() string {
	return m.hash
}

// WithStatus sets the status applied to an existing record. It does not touch
// status_if_new, so a new member can never be created unsubscribed or cleaned.
func (m Member) WithStatus(status Status) (Member, error) {
	if !status.Assignable() {
		return m, errors.NewInvalidInput("status must be subscribed, unsubscribed, cleaned or pending")
	}
	m.status = status
	return m, nil
}

// WithConfirm sets status and status_if_new together: pending when confirm
// is true (double opt-in), subscribed otherwise.
func (m Member) WithConfirm(confirm bool) Member {
	s := confirmStatus(confirm)
	m.status = s
	m.statusIfNew = s
	return m
}

// WithEmailType sets the preferred email format, html or text.
func (m Member) WithEmailType(emailType string) (Member, error) {
	if emailType != EmailTypeHTML && emailType != EmailTypeText {
		return m, errors.NewInvalidInput("email type must be html or text")
	}
	m.emailType = emailType
	return m, nil
}

// WithMergeFields replaces the merge fields.
func (m Member) WithMergeFields(fields map[string]any) Member {
	m.mergeFields = maps.Clone(fields)
	return m
}

// WithInterests replaces the interest flags.
func (m Member) WithInterests(interests map[string]bool) Member {
	m.interests = maps.Clone(interests)
	return m
}

// WithLanguage sets the member language. The code must be one of SupportedLanguages.
func (m Member) WithLanguage(code string) (Member, error) {
	if !IsSupportedLanguage(code) {
		return m, errors.NewInvalidInput(fmt.Sprintf("invalid language code: %s", code))
	}
	m.language = code
	return m, nil
}

// WithVIP sets the VIP flag.
func (m Member) WithVIP(vip bool) Member {
	m.vip = &vip
	return m
}

// WithLocation sets the geo coordinates.
func (m Member) WithLocation(latitude, longitude float64) Member {
	m.location = &Location{Latitude: latitude, Longitude: longitude}
	return m
}

// Parameters returns the request payload for an upsert. The map is freshly
// allocated on every call.
func (m Member) Parameters() map[string]any {
	params := map[string]any{
		"email_address": m.email,
	}
	if m.statusIfNew != "" {
		params["status_if_new"] = string(m.statusIfNew)
	}
	if m.status != "" {
		params["status"] = string(m.status)
	}
	if m.emailType != "" {
		params["email_type"] = m.emailType
	}
	if m.mergeFields != nil {
		params["merge_fields"] = maps.Clone(m.mergeFields)
	}
	if m.interests != nil {
		params["interests"] = maps.Clone(m.interests)
	}
	if m.language != "" {
		params["language"] = m.language
	}
	if m.vip != nil {
		params["vip"] = *m.vip
	}
	if m.location != nil {
		params["location"] = map[string]any{
			"latitude":  m.location.Latitude,
			"longitude": m.location.Longitude,
		}
	}
	return params
}
