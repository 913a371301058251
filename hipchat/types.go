// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Priority is the background color of a room message. HipChat v1 calls
// this parameter "color"; the three priorities map onto it.
type Priority string

const (
	PriorityMessage Priority = "green"
	PriorityWarning Priority = "yellow"
	PriorityAlert   Priority = "red"
)

// Format is the message_format parameter of rooms/message.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// MessageOptions controls delivery of a room message. The zero value
// sends a text message with PriorityMessage and no notification.
type MessageOptions struct {
	// Notify triggers a client notification (sound, popup) for room
	// occupants.
	Notify bool
	// Priority defaults to PriorityMessage.
	Priority Priority
	// Format defaults to FormatText. The table, list, and markdown
	// senders always use FormatHTML.
	Format Format
}

// TableOptions controls SendTableMessage.
type TableOptions struct {
	MessageOptions
	// SkipHeader renders the first row like every other row. By default
	// the first row's cells are bold.
	SkipHeader bool
}

// Epoch is a Unix timestamp in seconds as the API encodes it. The API
// is inconsistent: timestamps arrive as numbers, numeric strings, empty
// strings, or null. Zero means absent.
type Epoch int64

// UnmarshalJSON accepts a number, a numeric string, "", or null.
func (e *Epoch) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = 0
		return nil
	}
	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		if text == "" {
			*e = 0
			return nil
		}
	}
	seconds, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		value, floatErr := strconv.ParseFloat(text, 64)
		if floatErr != nil {
			return fmt.Errorf("invalid epoch timestamp %s", data)
		}
		seconds = int64(value)
	}
	*e = Epoch(seconds)
	return nil
}

// Time returns the timestamp in UTC, or the zero time if absent.
func (e Epoch) Time() time.Time {
	if e == 0 {
		return time.Time{}
	}
	return time.Unix(int64(e), 0).UTC()
}

// Flag is a boolean the API encodes either as true/false or as 0/1.
type Flag bool

// UnmarshalJSON accepts true, false, null, or a number (nonzero is true).
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"1"`:
		*f = true
		return nil
	case "false", "null", `"0"`, `""`:
		*f = false
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %s", data)
	}
	*f = value != 0
	return nil
}

// RoomRecord is a room as returned by rooms/list and rooms/show.
// MemberUserIDs and Participants are only present in rooms/show
// responses.
type RoomRecord struct {
	ID             int           `json:"room_id"`
	Name           string        `json:"name"`
	Topic          string        `json:"topic"`
	OwnerUserID    int           `json:"owner_user_id"`
	IsPrivate      Flag          `json:"is_private"`
	IsArchived     Flag          `json:"is_archived"`
	Created        Epoch         `json:"created"`
	LastActive     Epoch         `json:"last_active"`
	XMPPJID        string        `json:"xmpp_jid"`
	GuestAccessURL string        `json:"guest_access_url"`
	MemberUserIDs  []int         `json:"member_user_ids,omitempty"`
	Participants   []Participant `json:"participants,omitempty"`
}

// Participant is an entry in a room's participants list: a user
// currently present in the room.
type Participant struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// UnmarshalJSON decodes a room and fails if room_id or name is absent.
func (r *RoomRecord) UnmarshalJSON(data []byte) error {
	var required struct {
		ID   *int    `json:"room_id"`
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &required); err != nil {
		return err
	}
	if required.ID == nil {
		return missingField("room", "room_id")
	}
	if required.Name == nil {
		return missingField("room", "name")
	}
	type plain RoomRecord
	return json.Unmarshal(data, (*plain)(r))
}

// UserRecord is a user as returned by users/list.
type UserRecord struct {
	ID            int    `json:"user_id"`
	Name          string `json:"name"`
	MentionName   string `json:"mention_name"`
	Email         string `json:"email"`
	Title         string `json:"title"`
	PhotoURL      string `json:"photo_url"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message"`
	Timezone      string `json:"timezone,omitempty"`
	IsGroupAdmin  Flag   `json:"is_group_admin"`
	IsDeleted     Flag   `json:"is_deleted"`
	Created       Epoch  `json:"created"`
	LastActive    Epoch  `json:"last_active"`
}

// UnmarshalJSON decodes a user and fails if user_id or name is absent.
func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var required struct {
		ID   *int    `json:"user_id"`
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &required); err != nil {
		return err
	}
	if required.ID == nil {
		return missingField("user", "user_id")
	}
	if required.Name == nil {
		return missingField("user", "name")
	}
	type plain UserRecord
	return json.Unmarshal(data, (*plain)(u))
}

func missingField(entity, field string) error {
	return fmt.Errorf("%s record missing required field %q", entity, field)
}

// decodeEnvelope extracts body[key] into out. The API wraps every
// payload in a single-key object ({"rooms": [...]}, {"room": {...}}).
func decodeEnvelope(body json.RawMessage, key string, out any) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}
	payload, ok := envelope[key]
	if !ok || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return fmt.Errorf("response missing %q", key)
	}
	return json.Unmarshal(payload, out)
}
