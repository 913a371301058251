// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// Room is a cached view of one room. Instances are created by the
// Client's room cache and hold a reference back to the Client for
// further calls.
type Room struct {
	client *Client

	mu          sync.Mutex
	record      RoomRecord
	fullyLoaded bool
	deleted     bool
}

func newRoom(client *Client, record RoomRecord) *Room {
	return &Room{client: client, record: record}
}

// Record returns a copy of the backing record.
func (r *Room) Record() RoomRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.record
	record.MemberUserIDs = append([]int(nil), r.record.MemberUserIDs...)
	record.Participants = append([]Participant(nil), r.record.Participants...)
	return record
}

func (r *Room) ID() int { return r.Record().ID }
func (r *Room) Name() string { return r.Record().Name }
func (r *Room) Topic() string { return r.Record().Topic }
func (r *Room) OwnerID() int { return r.Record().OwnerUserID }
func (r *Room) IsPrivate() bool { return bool(r.Record().IsPrivate) }
func (r *Room) IsArchived() bool { return bool(r.Record().IsArchived) }
func (r *Room) XMPPJID() string { return r.Record().XMPPJID }
func (r *Room) Created() time.Time { return r.Record().Created.Time() }
func (r *Room) LastActive() time.Time { return r.Record().LastActive.Time() }

// GuestAccessURL returns the guest URL, or "" when guest access is off.
func (r *Room) GuestAccessURL() string { return r.Record().GuestAccessURL }

// IsDeleted reports whether this process deleted the room.
func (r *Room) IsDeleted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted
}

// IsFullyLoaded reports whether the record came from rooms/show.
func (r *Room) IsFullyLoaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fullyLoaded
}

func (r *Room) String() string {
	record := r.Record()
	return fmt.Sprintf("HipChat Room %d: %s", record.ID, record.Name)
}

// Owner resolves the owner through the Client's user cache.
func (r *Room) Owner(ctx context.Context) (*User, error) {
	return r.client.FindUserByID(ctx, r.OwnerID())
}

// Refresh fetches rooms/show and replaces the record, marking the room
// fully loaded.
func (r *Room) Refresh(ctx context.Context) error {
	if r.IsDeleted() {
		return r.deletedError("refresh")
	}
	id := r.ID()

	var record RoomRecord
	parameters := url.Values{"room_id": {strconv.Itoa(id)}}
	if err := r.client.fetch(ctx, "rooms/show", parameters, "room", &record); err != nil {
		return fmt.Errorf("hipchat: loading room %d: %w", id, err)
	}

	r.mu.Lock()
	r.record = record
	r.fullyLoaded = true
	r.mu.Unlock()
	return nil
}

// EnsureFullyLoaded calls Refresh unless the room is already fully
// loaded.
func (r *Room) EnsureFullyLoaded(ctx context.Context) error {
	if r.IsDeleted() {
		return r.deletedError("refresh")
	}
	if r.IsFullyLoaded() {
		return nil
	}
	return r.Refresh(ctx)
}

// SendMessage posts a message to the room as fromName.
func (r *Room) SendMessage(ctx context.Context, fromName, message string, options MessageOptions) error {
	if r.IsDeleted() {
		return r.deletedError("send message")
	}
	if fromName == "" {
		return fmt.Errorf("hipchat: sender name is required")
	}

	priority := options.Priority
	if priority == "" {
		priority = PriorityMessage
	}
	format := options.Format
	if format == "" {
		format = FormatText
	}

	id := r.ID()
	r.client.logger.Info("sending room message",
		"room_id", id,
		"room", r.Name(),
		"from", fromName,
		"format", string(format),
		"length", len(message),
	)

	parameters := url.Values{
		"room_id":        {strconv.Itoa(id)},
		"from":           {fromName},
		"message":        {message},
		"message_format": {string(format)},
		"color":          {string(priority)},
		"notify":         {boolParameter(options.Notify)},
	}
	if _, err := r.client.Call(ctx, "rooms/message", http.MethodPost, parameters); err != nil {
		return fmt.Errorf("hipchat: sending message to room %d: %w", id, err)
	}
	return nil
}

// SendTableMessage renders rows as an HTML table and sends it. The
// first row is bold unless options.SkipHeader is set.
func (r *Room) SendTableMessage(ctx context.Context, fromName string, rows [][]string, options TableOptions) error {
	if r.IsDeleted() {
		return r.deletedError("send message")
	}
	messageOptions := options.MessageOptions
	messageOptions.Format = FormatHTML
	return r.SendMessage(ctx, fromName, TableHTML(rows, !options.SkipHeader), messageOptions)
}

// SendListMessage renders items as an HTML unordered list and sends it.
func (r *Room) SendListMessage(ctx context.Context, fromName string, items []string, options MessageOptions) error {
	if r.IsDeleted() {
		return r.deletedError("send message")
	}
	options.Format = FormatHTML
	return r.SendMessage(ctx, fromName, ListHTML(items), options)
}

// SendMarkdownMessage renders GitHub-flavored markdown to HTML and sends
// it.
func (r *Room) SendMarkdownMessage(ctx context.Context, fromName, markdown string, options MessageOptions) error {
	if r.IsDeleted() {
		return r.deletedError("send message")
	}
	rendered, err := RenderMarkdown(markdown)
	if err != nil {
		return err
	}
	options.Format = FormatHTML
	return r.SendMessage(ctx, fromName, rendered, options)
}

// ChangeTopic sets the room topic.
func (r *Room) ChangeTopic(ctx context.Context, topic string) error {
	if r.IsDeleted() {
		return r.deletedError("change topic")
	}

	id := r.ID()
	r.client.logger.Info("changing room topic", "room_id", id, "room", r.Name(), "topic", topic)

	parameters := url.Values{
		"room_id": {strconv.Itoa(id)},
		"topic":   {topic},
	}
	if _, err := r.client.Call(ctx, "rooms/topic", http.MethodPost, parameters); err != nil {
		return fmt.Errorf("hipchat: changing topic of room %d: %w", id, err)
	}

	r.mu.Lock()
	r.record.Topic = topic
	r.mu.Unlock()
	return nil
}

// Delete deletes the room, marks this instance deleted, and refreshes
// the Client's room cache. The instance stays deleted even if the
// refresh fails.
func (r *Room) Delete(ctx context.Context) error {
	if r.IsDeleted() {
		return r.deletedError("delete")
	}

	id := r.ID()
	r.client.logger.Info("deleting room", "room_id", id, "room", r.Name())

	parameters := url.Values{"room_id": {strconv.Itoa(id)}}
	if _, err := r.client.Call(ctx, "rooms/delete", http.MethodPost, parameters); err != nil {
		return fmt.Errorf("hipchat: deleting room %d: %w", id, err)
	}

	r.mu.Lock()
	r.deleted = true
	r.mu.Unlock()

	if _, err := r.client.RefreshRooms(ctx); err != nil {
		return fmt.Errorf("hipchat: room %d deleted but cache refresh failed: %w", id, err)
	}
	return nil
}

// MemberIDs returns the ids of the room's members. A public room is
// open to everyone, so its members are all known users (this may fetch
// users/list). A private room's members come from its full record (this
// may fetch rooms/show). A deleted room has no members.
func (r *Room) MemberIDs(ctx context.Context) ([]int, error) {
	if r.IsDeleted() {
		return []int{}, nil
	}

	if !r.IsPrivate() {
		users, err := r.client.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]int, 0, len(users))
		for _, user := range users {
			ids = append(ids, user.ID())
		}
		return ids, nil
	}

	if err := r.EnsureFullyLoaded(ctx); err != nil {
		return nil, err
	}
	ids := r.Record().MemberUserIDs
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Members returns the known, non-deleted users whose id is in MemberIDs,
// in user-list order.
func (r *Room) Members(ctx context.Context) ([]*User, error) {
	ids, err := r.MemberIDs(ctx)
	if err != nil {
		return nil, err
	}
	return r.usersIn(ctx, ids, true)
}

// ParticipantIDs returns the ids of users currently in the room. This
// always requires a full load, whatever the room's privacy.
func (r *Room) ParticipantIDs(ctx context.Context) ([]int, error) {
	if r.IsDeleted() {
		return []int{}, nil
	}
	if err := r.EnsureFullyLoaded(ctx); err != nil {
		return nil, err
	}
	participants := r.Record().Participants
	ids := make([]int, 0, len(participants))
	for _, participant := range participants {
		ids = append(ids, participant.UserID)
	}
	return ids, nil
}

// Participants returns the known users whose id is in ParticipantIDs,
// in user-list order.
func (r *Room) Participants(ctx context.Context) ([]*User, error) {
	ids, err := r.ParticipantIDs(ctx)
	if err != nil {
		return nil, err
	}
	return r.usersIn(ctx, ids, false)
}

func (r *Room) usersIn(ctx context.Context, ids []int, skipDeleted bool) ([]*User, error) {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	users, err := r.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*User, 0, len(ids))
	for _, user := range users {
		if _, ok := wanted[user.ID()]; !ok {
			continue
		}
		if skipDeleted && user.IsDeleted() {
			continue
		}
		matched = append(matched, user)
	}
	return matched, nil
}

func (r *Room) deletedError(operation string) error {
	record := r.Record()
	r.client.logger.Warn("operation on deleted room ignored",
		"operation", operation,
		"room_id", record.ID,
		"room", record.Name,
	)
	return fmt.Errorf("hipchat: cannot %s room %d (%s): %w", operation, record.ID, record.Name, ErrRoomDeleted)
}
