// Package paths resolves and validates the directory brokensym searches.
//
// It handles:
//
//   - Defaulting to the invoking user's home directory ($HOME)
//   - Expanding a leading ~ in the search_dir argument
//   - Turning a relative search_dir into an absolute, symlink-free path
//   - Checking that the result exists and is a directory
//
// Absolute arguments are used as given, so reported link paths keep the
// spelling the user typed.
package paths
