// Package session holds the single local user's signed-in flag.
//
// # Overview
//
// hookchat has no accounts and verifies no credentials. "Signed in" is one
// durable boolean that gates which screen the app shows. The flag lives in the
// storage.Store under the key "session.logged_in" with the value "true"; the
// key is absent while signed out.
//
// # Lifecycle
//
// 1. Hydrate: at startup the store is read once. A missing key, an unexpected
// value or a storage error all resolve to signed out. Hydrated reports when
// this has finished; routing decisions must wait for it.
//
// 2. SignIn: the in-memory flag flips to true first, then "true" is written.
// A failed write is logged and otherwise ignored, so memory may run ahead of
// disk until the next successful write.
//
// 3. SignOut: the in-memory flag flips to false first, then the key is
// removed, with the same failure handling as SignIn.
//
// # Notifications
//
// Subscribe registers a listener that receives the new flag after every
// transition, including hydration. The app forwards these into its program
// (see app.Model.Watch) and re-runs the route rule in package route.
package session
