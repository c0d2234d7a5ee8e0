// Package materialize performs the filesystem effect for one template file:
// it asks the conflict resolver what to do, then skips, merges, or writes the
// file. JSON documents are re-encoded on write so the reserved merge key never
// reaches the destination; every other file is copied byte for byte.
package materialize
