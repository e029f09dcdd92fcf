// SPDX-License-Identifier: MPL-2.0

// Package resolve implements the auto-configuration resolution engine: per
// trigger it gathers module candidates from the registry, deduplicates them,
// applies and validates explicit exclusions, runs the fast-path condition
// filters, and notifies listeners. Entries from all triggers of one startup
// pass are collected by a Group, which merges exclusions globally and asks
// the priority sorter once for the final activation order.
//
// Resolution is deferred machinery: the host runtime invokes it after
// explicit configuration has been processed, so explicit configuration
// always wins. All errors are fail-fast; inputs are static manifests, so
// nothing is retried.
package resolve
