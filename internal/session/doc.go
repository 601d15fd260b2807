// Package session ties one player's condition, packing grid and checkpoint
// together. A Session moves from the menu into packing when it is created,
// and back to the menu through Reset.
//
// Sessions are not safe for concurrent use; the storage package serialises
// access to each one.
package session
