// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"fmt"
	"time"
)

// User is a read-only view of one user record from users/list.
type User struct {
	record UserRecord
}

// Record returns a copy of the backing record.
func (u *User) Record() UserRecord { return u.record }

func (u *User) ID() int { return u.record.ID }
func (u *User) Name() string { return u.record.Name }
func (u *User) MentionName() string { return u.record.MentionName }
func (u *User) Email() string { return u.record.Email }
func (u *User) Title() string { return u.record.Title }
func (u *User) PhotoURL() string { return u.record.PhotoURL }
func (u *User) Status() string { return u.record.Status }
func (u *User) StatusMessage() string { return u.record.StatusMessage }
func (u *User) IsGroupAdmin() bool { return bool(u.record.IsGroupAdmin) }
func (u *User) IsDeleted() bool { return bool(u.record.IsDeleted) }

// Created returns the account creation time, or the zero time if absent.
func (u *User) Created() time.Time { return u.record.Created.Time() }

// LastActive returns the last activity time, or the zero time if the
// user has never been active.
func (u *User) LastActive() time.Time { return u.record.LastActive.Time() }

func (u *User) String() string {
	return fmt.Sprintf("User %d: %s", u.record.ID, u.record.Name)
}
