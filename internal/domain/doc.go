// Package domain contains the core entities and value objects for pagemark.
//
// This package is the innermost layer. It has no dependencies on the host
// document, the operator prompt or logging, and contains only the records
// the bookkeeping passes produce.
//
// # Entities
//
//   - [Mapping]: the bookmark to page correspondence of one document
//   - [DuplicateGroup]: a page reached by more than one bookmark
//   - [BatchResult]: the aggregated outcome of an annotation commit pass
//   - [CleanResult]: the outcome of an annotation cleaning pass
//   - [Report]: the result surface returned to an operator or caller
//
// All page indices held by these types are zero-based. [Report] is the only
// type that converts to 1-based page numbers, for display.
package domain
