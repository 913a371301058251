// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package hipchat is a client for the HipChat v1 REST API: rooms, users,
// and room messaging.
//
// [Client] holds the API base URL, the auth token (in mmap-backed
// [secret.Buffer] memory owned by the caller), and the HTTP transport.
// [Client.Call] is the single request path. GET calls carry every
// parameter plus format and auth_token in the query string; other
// methods carry only auth_token in the query string and form-encode the
// parameters into the body.
//
// The Client caches the room list and the user list. [Client.ListRooms]
// and [Client.ListUsers] fetch on first use (or whenever the cached list
// is empty) and return the cached entities afterwards. The room cache is
// rebuilt by [Client.RefreshRooms], [Client.CreateRoom], and
// [Room.Delete]; rebuilding replaces every [*Room], discarding any
// full-load state on the old instances.
//
// A [Room] returned from rooms/list lacks its member and participant
// lists. Accessors that need them ([Room.MemberIDs], [Room.Members],
// [Room.ParticipantIDs], [Room.Participants]) take a context because
// they may issue a rooms/show call (or a users/list call) before
// answering. [Room.EnsureFullyLoaded] performs that load explicitly.
//
// Once [Room.Delete] succeeds the Room is marked deleted for the life of
// the process. Every later mutation or refresh on it returns
// [ErrRoomDeleted] without touching the network.
//
// Errors come in three shapes: [*TransportError] when the request never
// produced a response, [*APIError] when the server answered with its
// error envelope, and [*ProtocolError] when the response body was not
// the JSON document expected.
//
// The Client's caches and each Room's state are mutex-guarded, so a
// Client may be shared between goroutines. No lock is held across a
// network call; two goroutines racing to populate an empty cache both
// fetch and the later result wins.
package hipchat
