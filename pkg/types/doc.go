// Package types defines the core types and interfaces used throughout brokensym.
// This includes the directory entry classification (EntryType, DirEntry) and
// the FS interface the traverser reads the filesystem through.
package types
