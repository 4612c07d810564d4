// Package docfile reads and writes documents as JSON files.
//
// The on-disk form is a small versioned envelope around the document
// tree. Save writes atomically (temp file plus rename); Load validates
// the tree on the way in, assigning IDs to blocks that lack one and
// rejecting duplicates.
package docfile
