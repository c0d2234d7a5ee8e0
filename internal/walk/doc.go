// Package walk enumerates the files of a template tree. Directories are
// descended depth-first and never reported; each file is handed to the visit
// callback, which must return before the next entry is read.
package walk
