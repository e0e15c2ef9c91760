// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides an in-memory provider implementing port.Gateway for
// tests and offline runs.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
)

// Call is one request the mock received
type Call struct {
	Method  model.Method
	Path    string
	Payload any
}

// MockGateway keeps lists, members and tags in memory and answers the way
// the provider does, including 404s for unknown lists and members
type MockGateway struct {
	lists      map[string]*model.List
	members    map[string]map[string]*model.MemberRecord // listID -> hash -> member
	tags       map[string]map[string][]model.Tag         // listID -> hash -> tags
	listErrors map[string]error
	memberErrs map[string]error // listID/hash -> error
	calls      []Call
	lastStatus int
	nextTagID  int64
	mu         sync.RWMutex
}

var _ port.Gateway = (*MockGateway)(nil)

// NewMockGateway creates an empty mock provider
func NewMockGateway() *MockGateway {
	return &MockGateway{
		lists:      make(map[string]*model.List),
		members:    make(map[string]map[string]*model.MemberRecord),
		tags:       make(map[string]map[string][]model.Tag),
		listErrors: make(map[string]error),
		memberErrs: make(map[string]error),
	}
}

// NewMockGatewayWithSampleData creates a mock provider holding one list with
// a subscribed and a pending member
func NewMockGatewayWithSampleData() *MockGateway {
	m := NewMockGateway()
	m.AddList("mock-list-1", "Mock Newsletter")
	m.SetMember("mock-list-1", "subscribed@example.com", model.StatusSubscribed)
	m.SetMember("mock-list-1", "pending@example.com", model.StatusPending)
	m.SetTags("mock-list-1", "subscribed@example.com", "customer", "beta")
	return m
}

// AddList registers a list
func (m *MockGateway) AddList(listID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[listID] = &model.List{
		ID:          listID,
		Name:        name,
		DateCreated: time.Now().UTC().Format(constants.TimestampFormat),
	}
	if m.members[listID] == nil {
		m.members[listID] = make(map[string]*model.MemberRecord)
		m.tags[listID] = make(map[string][]model.Tag)
	}
}

// SetMember stores a member record with the given status. Any status string
// is accepted so tests can simulate contract violations.
func (m *MockGateway) SetMember(listID, email string, status model.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized := model.NormalizeEmail(email)
	hash := model.SubscriberHash(normalized)
	if m.members[listID] == nil {
		m.members[listID] = make(map[string]*model.MemberRecord)
	}
	m.members[listID][hash] = &model.MemberRecord{
		ID:           hash,
		EmailAddress: normalized,
		Status:       status,
		ListID:       listID,
	}
}

// SetTags replaces the tags of a member
func (m *MockGateway) SetTags(listID, email string, names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash := model.SubscriberHash(email)
	if m.tags[listID] == nil {
		m.tags[listID] = make(map[string][]model.Tag)
	}
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, m.newTag(name))
	}
	m.tags[listID][hash] = tags
}

// SetErrorForList makes every call on the list fail with err
func (m *MockGateway) SetErrorForList(listID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErrors[listID] = err
}

// SetErrorForMember makes every member call for the address fail with err
func (m *MockGateway) SetErrorForMember(listID, email string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memberErrs[listID+"/"+model.SubscriberHash(email)] = err
}

// ClearErrors removes every simulated error
func (m *MockGateway) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErrors = make(map[string]error)
	m.memberErrs = make(map[string]error)
}

// Member returns a copy of the stored record, if any
func (m *MockGateway) Member(listID, email string) (model.MemberRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.members[listID][model.SubscriberHash(email)]
	if !ok {
		return model.MemberRecord{}, false
	}
	return *record, true
}

// Calls returns every call received so far
func (m *MockGateway) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.calls)
}

// Writes returns the calls that were not reads
func (m *MockGateway) Writes() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var writes []Call
	for _, c := range m.calls {
		if c.Method != model.MethodGet {
			writes = append(writes, c)
		}
	}
	return writes
}

// ResetCalls forgets the recorded calls
func (m *MockGateway) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// ResponseCode returns the simulated status of the most recent call
func (m *MockGateway) ResponseCode() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastStatus
}

// ResponseCodeNotFound reports whether the most recent call was a 404
func (m *MockGateway) ResponseCodeNotFound() bool {
	return m.ResponseCode() == http.StatusNotFound
}

// record appends a call; callers hold the write lock
func (m *MockGateway) record(method model.Method, path string, payload any) {
	m.calls = append(m.calls, Call{Method: method, Path: path, Payload: payload})
}

// fail stores the status of err and returns it; callers hold the write lock
func (m *MockGateway) fail(err error) error {
	m.lastStatus = errors.StatusCode(err)
	return err
}

func (m *MockGateway) ok(status int) {
	m.lastStatus = status
}

func notFound(resource string) error {
	body := fmt.Sprintf(`{"type":"about:blank","title":"Resource Not Found","status":404,"detail":"The requested %s could not be found."}`, resource)
	return errors.NewBadRequest("Mailchimp API error (404): Resource Not Found", http.StatusNotFound, body)
}

// list returns the list or a 404; callers hold the lock
func (m *MockGateway) list(listID string) (*model.List, error) {
	if err, ok := m.listErrors[listID]; ok {
		return nil, err
	}
	list, ok := m.lists[listID]
	if !ok {
		return nil, notFound("list")
	}
	return list, nil
}

// member returns the member or a 404; callers hold the lock
func (m *MockGateway) member(listID, hash string) (*model.MemberRecord, error) {
	if _, err := m.list(listID); err != nil {
		return nil, err
	}
	if err, ok := m.memberErrs[listID+"/"+hash]; ok {
		return nil, err
	}
	record, ok := m.members[listID][hash]
	if !ok {
		return nil, notFound("member")
	}
	return record, nil
}

func (m *MockGateway) newTag(name string) model.Tag {
	m.nextTagID++
	return model.Tag{
		ID:        m.nextTagID,
		Name:      name,
		DateAdded: time.Now().UTC().Format(constants.TimestampFormat),
	}
}

func memberPath(listID, hash string) string {
	return "/lists/" + listID + "/members/" + hash
}

// GetList retrieves a list
func (m *MockGateway) GetList(ctx context.Context, listID string) (*model.List, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodGet, "/lists/"+listID, nil)
	list, err := m.list(listID)
	if err != nil {
		return nil, m.fail(err)
	}
	m.ok(http.StatusOK)

	out := *list
	return &out, nil
}

// GetLists retrieves the lists in ID order, honoring Count and Offset
func (m *MockGateway) GetLists(ctx context.Context, query model.ListsQuery) (*model.ListCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodGet, "/lists", query)

	ids := slices.Sorted(maps.Keys(m.lists))
	collection := &model.ListCollection{Lists: []model.List{}, TotalItems: len(ids)}

	count := query.Count
	if count <= 0 {
		count = 10
	}
	for i := query.Offset; i < len(ids) && len(collection.Lists) < count; i++ {
		collection.Lists = append(collection.Lists, *m.lists[ids[i]])
	}

	m.ok(http.StatusOK)
	return collection, nil
}

// GetMember retrieves a member by subscriber hash
func (m *MockGateway) GetMember(ctx context.Context, listID, subscriberHash string) (*model.MemberRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodGet, memberPath(listID, subscriberHash), nil)
	record, err := m.member(listID, subscriberHash)
	if err != nil {
		return nil, m.fail(err)
	}
	m.ok(http.StatusOK)

	out := *record
	return &out, nil
}

// AddUpdate upserts a member by address
func (m *MockGateway) AddUpdate(ctx context.Context, listID, email string, mergeFields map[string]any, confirm bool) (*model.MemberRecord, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return nil, err
	}
	member = member.WithConfirm(confirm)
	if len(mergeFields) > 0 {
		member = member.WithMergeFields(mergeFields)
	}
	return m.upsert(ctx, listID, member, "")
}

// AddUpdateMember upserts a prepared member
func (m *MockGateway) AddUpdateMember(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error) {
	return m.upsert(ctx, listID, member, "")
}

// AddUpdateMemberSkipMergeValidation upserts a prepared member
func (m *MockGateway) AddUpdateMemberSkipMergeValidation(ctx context.Context, listID string, member model.Member) (*model.MemberRecord, error) {
	return m.upsert(ctx, listID, member, "?skip_merge_validation=true")
}

// Unsubscribe sets both status fields to unsubscribed
func (m *MockGateway) Unsubscribe(ctx context.Context, listID, email string) (*model.MemberRecord, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	payload := map[string]any{
		"email_address": member.Email(),
		"status_if_new": string(model.StatusUnsubscribed),
		"status":        string(model.StatusUnsubscribed),
	}
	m.record(model.MethodPut, memberPath(listID, member.Identifier()), payload)
	return m.store(listID, member.Email(), model.StatusUnsubscribed, model.StatusUnsubscribed, nil)
}

func (m *MockGateway) upsert(ctx context.Context, listID string, member model.Member, suffix string) (*model.MemberRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params := member.Parameters()
	m.record(model.MethodPut, memberPath(listID, member.Identifier())+suffix, params)

	status, _ := params["status"].(string)
	statusIfNew, _ := params["status_if_new"].(string)
	mergeFields, _ := params["merge_fields"].(map[string]any)

	slog.DebugContext(ctx, "mock upsert",
		"list_id", listID,
		"status", status,
		"status_if_new", statusIfNew,
	)
	return m.store(listID, member.Email(), model.Status(status), model.Status(statusIfNew), mergeFields)
}

// store applies an upsert; callers hold the write lock
func (m *MockGateway) store(listID, email string, status, statusIfNew model.Status, mergeFields map[string]any) (*model.MemberRecord, error) {
	if _, err := m.list(listID); err != nil {
		return nil, m.fail(err)
	}
	hash := model.SubscriberHash(email)
	if err, ok := m.memberErrs[listID+"/"+hash]; ok {
		return nil, m.fail(err)
	}

	record, exists := m.members[listID][hash]
	switch {
	case !exists:
		record = &model.MemberRecord{ID: hash, EmailAddress: email, ListID: listID, Status: statusIfNew}
		m.members[listID][hash] = record
	case record.Status == model.StatusArchived:
		// re-adding an archived contact behaves like a create
		record.Status = statusIfNew
	}
	if exists && status != "" {
		record.Status = status
	}
	if mergeFields != nil {
		record.MergeFields = maps.Clone(mergeFields)
	}
	m.ok(http.StatusOK)

	out := *record
	return &out, nil
}

// Archive marks a member archived
func (m *MockGateway) Archive(ctx context.Context, listID, email string) error {
	member, err := model.NewMember(email)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodDelete, memberPath(listID, member.Identifier()), map[string]any{"email_address": member.Email()})
	record, err := m.member(listID, member.Identifier())
	if err != nil {
		return m.fail(err)
	}
	record.Status = model.StatusArchived
	m.ok(http.StatusNoContent)
	return nil
}

// Delete erases an archived member. Members that were not archived first are
// refused with a 400, as the provider does.
func (m *MockGateway) Delete(ctx context.Context, listID, email string) error {
	member, err := model.NewMember(email)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodPost, memberPath(listID, member.Identifier())+"/actions/delete-permanent", nil)
	record, err := m.member(listID, member.Identifier())
	if err != nil {
		return m.fail(err)
	}
	if record.Status != model.StatusArchived {
		body := `{"title":"Method Not Allowed","status":400,"detail":"The member must be archived before it can be permanently deleted."}`
		return m.fail(errors.NewBadRequest("Mailchimp API error (400): Method Not Allowed", http.StatusBadRequest, body))
	}
	delete(m.members[listID], member.Identifier())
	delete(m.tags[listID], member.Identifier())
	m.ok(http.StatusNoContent)
	return nil
}

// GetTags retrieves the tags of a member
func (m *MockGateway) GetTags(ctx context.Context, listID, email string) (*model.TagCollection, error) {
	member, err := model.NewMember(email)
	if err != nil {
		return nil, err
	}
	return m.tagsByHash(listID, member.Identifier())
}

func (m *MockGateway) tagsByHash(listID, hash string) (*model.TagCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record(model.MethodGet, memberPath(listID, hash)+"/tags", nil)
	if _, err := m.member(listID, hash); err != nil {
		return nil, m.fail(err)
	}
	tags := slices.Clone(m.tags[listID][hash])
	if tags == nil {
		tags = []model.Tag{}
	}
	m.ok(http.StatusOK)
	return &model.TagCollection{Tags: tags, TotalItems: len(tags)}, nil
}

// AddTags attaches the named tags
func (m *MockGateway) AddTags(ctx context.Context, listID, email string, tags []string) error {
	return m.updateTags(listID, email, tags, model.TagActive)
}

// RemoveTags detaches the named tags
func (m *MockGateway) RemoveTags(ctx context.Context, listID, email string, tags []string) error {
	return m.updateTags(listID, email, tags, model.TagInactive)
}

func (m *MockGateway) updateTags(listID, email string, names []string, status model.TagStatus) error {
	member, err := model.NewMember(email)
	if err != nil {
		return err
	}
	hash := member.Identifier()

	m.mu.Lock()
	defer m.mu.Unlock()

	updates := make([]model.TagUpdate, 0, len(names))
	for _, name := range names {
		updates = append(updates, model.TagUpdate{Name: name, Status: status})
	}
	m.record(model.MethodPost, memberPath(listID, hash)+"/tags", map[string]any{"tags": updates})

	if _, err := m.member(listID, hash); err != nil {
		return m.fail(err)
	}

	current := m.tags[listID][hash]
	for _, name := range names {
		idx := slices.IndexFunc(current, func(t model.Tag) bool { return t.Name == name })
		switch {
		case status == model.TagActive && idx < 0:
			current = append(current, m.newTag(name))
		case status == model.TagInactive && idx >= 0:
			current = slices.Delete(current, idx, idx+1)
		}
	}
	m.tags[listID][hash] = current
	m.ok(http.StatusNoContent)
	return nil
}

// Call answers reads for lists, members and member tags from memory. Other calls
// are recorded and acknowledged with an empty object.
func (m *MockGateway) Call(ctx context.Context, method model.Method, path string, payload any) (map[string]any, error) {
	if !method.Valid() {
		return nil, errors.NewInvalidInput(fmt.Sprintf("invalid API call method: %s", method))
	}

	segments := strings.Split(strings.Trim(strings.SplitN(path, "?", 2)[0], "/"), "/")
	if method == model.MethodGet && len(segments) >= 1 && segments[0] == "lists" {
		switch len(segments) {
		case 1:
			lists, err := m.GetLists(ctx, model.ListsQuery{Count: 1000})
			if err != nil {
				return nil, err
			}
			items := make([]any, 0, len(lists.Lists))
			for _, l := range lists.Lists {
				items = append(items, map[string]any{"id": l.ID, "name": l.Name, "date_created": l.DateCreated})
			}
			return map[string]any{"lists": items, "total_items": lists.TotalItems}, nil
		case 2:
			list, err := m.GetList(ctx, segments[1])
			if err != nil {
				return nil, err
			}
			return map[string]any{"id": list.ID, "name": list.Name, "date_created": list.DateCreated}, nil
		case 4:
			if segments[2] == "members" {
				record, err := m.GetMember(ctx, segments[1], segments[3])
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"id":            record.ID,
					"email_address": record.EmailAddress,
					"status":        string(record.Status),
					"list_id":       record.ListID,
				}, nil
			}
		case 5:
			if segments[2] == "members" && segments[4] == "tags" {
				tags, err := m.tagsByHash(segments[1], segments[3])
				if err != nil {
					return nil, err
				}
				items := make([]any, 0, len(tags.Tags))
				for _, tag := range tags.Tags {
					items = append(items, map[string]any{"id": tag.ID, "name": tag.Name, "date_added": tag.DateAdded})
				}
				return map[string]any{"tags": items, "total_items": tags.TotalItems}, nil
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(method, path, payload)
	m.ok(http.StatusOK)
	return map[string]any{}, nil
}
