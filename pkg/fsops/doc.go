// Package fsops implements path-safe filesystem operations: copying,
// moving, deleting and creating files, directories and symbolic links.
//
// All operations are synchronous blocking syscalls with no internal
// parallelism. Symlinks are never followed when classifying or opening
// paths, and copy/move entry points perform explicit same-file and
// destination-in-source pre-checks before touching the tree. Recursive
// operations run in one of two error modes: FailEarly aborts on the first
// sub-operation failure, CollectFailures records failures and keeps
// walking, reporting them all at the end.
//
// Concurrent external mutation of the filesystem during a multi-step
// operation is an accepted race: nofollow and exclusive-create flags
// narrow the window, nothing pins paths to descriptors across steps.
package fsops
