package types

import "io/fs"

// EntryType classifies a directory entry by the file type reported by the
// directory listing.
type EntryType int

const (
	EntryUnknown EntryType = iota
	EntryRegular
	EntryDirectory
	EntrySymlink
	EntryNamedPipe
	EntrySocket
	EntryCharDevice
	EntryBlockDevice
)

// String returns the string representation of the entry type
func (t EntryType) String() string {
	switch t {
	case EntryRegular:
		return "regular-file"
	case EntryDirectory:
		return "directory"
	case EntrySymlink:
		return "symlink"
	case EntryNamedPipe:
		return "named-pipe"
	case EntrySocket:
		return "socket"
	case EntryCharDevice:
		return "char-device"
	case EntryBlockDevice:
		return "block-device"
	default:
		return "unknown"
	}
}

// EntryTypeFromMode derives the EntryType from the type bits of a file mode.
// Permission bits are ignored. Modes the listing could not classify
// (fs.ModeIrregular, or combinations with no known meaning) map to
// EntryUnknown.
func EntryTypeFromMode(mode fs.FileMode) EntryType {
	switch t := mode.Type(); {
	case t == 0:
		return EntryRegular
	case t == fs.ModeDir:
		return EntryDirectory
	case t == fs.ModeSymlink:
		return EntrySymlink
	case t == fs.ModeNamedPipe:
		return EntryNamedPipe
	case t == fs.ModeSocket:
		return EntrySocket
	case t == fs.ModeDevice|fs.ModeCharDevice:
		return EntryCharDevice
	case t == fs.ModeDevice:
		return EntryBlockDevice
	default:
		return EntryUnknown
	}
}

// DirEntry is a single name produced by a directory listing together with
// its classified type. It is consumed immediately by the traverser and never
// retained.
type DirEntry struct {
	Name string
	Type EntryType
}

// IsDotEntry reports whether the entry is the self or parent reference.
func (e DirEntry) IsDotEntry() bool {
	return e.Name == "." || e.Name == ".."
}
