// Package traverse walks a directory tree and reports broken symbolic links.
//
// A Walker lists each directory, dispatches on the type reported by the
// listing and checks every symlink by stat-ing its target. Links whose target
// does not exist are written, one path per line, to the results writer.
// Every other problem with a link is written to the diagnostics writer and
// the walk continues. A directory that cannot be opened or read stops the
// walk: silently skipping a subtree would hide broken links.
//
// Symlinks are never descended into, even when they point at a directory,
// so cyclic links cannot make the walk loop. Directories still to be visited
// are kept on an explicit stack rather than the call stack, and only one
// directory handle is open at a time.
package traverse
