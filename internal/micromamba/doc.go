// SPDX-License-Identifier: GPL-2.0-only

// Package micromamba obtains a working micromamba binary and executes it.
//
// csm needs micromamba for every environment operation but does not bundle
// it. The Runner resolves one through a three-stage fallback:
//
//  1. $PATH: a user- or system-managed install always wins.
//  2. User cache: a copy csm downloaded on an earlier run.
//  3. Download: fetch the official release archive, extract the binary into
//     the cache, then run it.
//
// Every attempt ends in exactly one Result. StatusNotFound is the only
// outcome that advances the chain; a binary that exists but cannot run is
// surfaced as StatusExecutionFailed so a broken install is never papered
// over by a download.
//
// The whole package is synchronous and single-threaded: the download and the
// child process both run to completion in the calling goroutine. The cache
// directory is shared between unrelated csm invocations and is not locked;
// two racing runs may redundantly download or observe a partially written
// binary.
package micromamba
