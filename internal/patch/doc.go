// Package patch registers new entries in a text file by inserting them above
// a placeholder marker line. The marker line itself is always kept, so every
// later run finds it again and the file grows by one entry per run.
//
// The file's own syntax is never parsed: a line matches when it contains the
// marker anywhere, and the inserted line is a tab followed by the quoted
// value.
package patch
