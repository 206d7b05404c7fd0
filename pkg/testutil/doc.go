// Package testutil provides utilities for testing brokensym components.
//
// Key components:
//   - MemoryFS: In-memory types.FS with error injection, for traversal tests
//     that need entry types or failures a real filesystem cannot produce
//   - Tree: Builder for real directory trees under t.TempDir(), with
//     symlinks, FIFOs and permission changes
//
// All test data should be defined inline, not in external files.
package testutil
