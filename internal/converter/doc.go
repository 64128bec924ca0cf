// Package converter builds the argument list for the external bag converter
// (rs-convert) and runs it as a child process, streaming its combined
// stdout/stderr line by line.
//
// The converter is a black box: exit code 0 means success, anything else is
// an [ExitError]. Its output has no schema and is only used to drive the
// progress heuristic.
package converter
