// Package scaffold creates the on-disk skeleton of a new exercise: a
// directory under the project's source root holding an empty source file and,
// optionally, an empty vertex/fragment shader pair. It also lists the
// exercises that already exist so the CLI can report them.
package scaffold
