// Package id generates unique identifiers: prefixed NanoIDs for users
// and time-sortable entry IDs for journal entries.
package id

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "user-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

const (
	entryPrefix = "ENTRY_"

	// entryTimestampLayout is lexicographically sortable and contains
	// no characters that need escaping in URLs or file names (colons
	// are replaced with dashes). Fixed-width nanoseconds keep the
	// ordering stable within the same second.
	entryTimestampLayout = "2006-01-02T15-04-05.000000000Z"

	// entrySuffixAlphabet deliberately excludes '_' and '-' so the
	// suffix never collides with the ID's separators.
	entrySuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	entrySuffixLength   = 8
)

// NewEntryID builds a journal entry ID for the given creation time.
// Format: ENTRY_<sortable-timestamp>_<random-suffix>. IDs sort
// lexicographically by creation time, with the suffix breaking ties.
func NewEntryID(createdAt time.Time) (string, error) {
	suffix, err := gonanoid.Generate(entrySuffixAlphabet, entrySuffixLength)
	if err != nil {
		return "", fmt.Errorf("generate entry suffix: %w", err)
	}
	ts := createdAt.UTC().Format(entryTimestampLayout)
	return entryPrefix + ts + "_" + suffix, nil
}

// EntryIDTimeBound returns a key-range bound that sorts before every
// entry ID created at or after t and after every ID created earlier.
// Because IDs embed a fixed-width sortable timestamp, the bound works
// as a seek target for date-range scans without naming a concrete
// entry.
func EntryIDTimeBound(t time.Time) string {
	return entryPrefix + t.UTC().Format(entryTimestampLayout)
}

// EntryCreatedAt extracts the creation timestamp embedded in an entry ID.
func EntryCreatedAt(entryID string) (time.Time, error) {
	rest, ok := strings.CutPrefix(entryID, entryPrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid entry ID %q: missing prefix", entryID)
	}
	ts, _, ok := strings.Cut(rest, "_")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid entry ID %q: missing suffix", entryID)
	}
	t, err := time.Parse(entryTimestampLayout, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid entry ID %q: %w", entryID, err)
	}
	return t, nil
}

// IsEntryID reports whether s looks like a generated entry ID.
func IsEntryID(s string) bool {
	_, err := EntryCreatedAt(s)
	return err == nil
}
