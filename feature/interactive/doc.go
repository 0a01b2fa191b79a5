// Package interactive implements the operator prompt: list buckets, read a
// selection, reconcile it, repeat.
//
// Accepted input:
//
//	<index>  reconcile the bucket shown as [index]
//	a        reconcile every listed bucket
//	exit     quit (end of input also quits)
//
// Anything else prints an error and prompts again.
package interactive
