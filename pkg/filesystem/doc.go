// Package filesystem provides filesystem implementations for brokensym.
//
// This package contains the OS implementation of the types.FS interface used
// by the traverser.
package filesystem
