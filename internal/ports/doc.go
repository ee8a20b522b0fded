// Package ports defines the interfaces that connect the bookkeeping core to
// the host environment.
//
// The core never owns a document, never draws a dialog and never writes to a
// console. It consumes those capabilities through the ports below, and the
// adapters under internal/adapters fulfil them.
//
// # Port Interfaces
//
//   - [Document]: page count, navigation cursor, bookmarks and annotations
//   - [Bookmark]: a named, side-effecting navigation shortcut
//   - [Confirmer]: the operator's yes/no answer, delivered asynchronously
//
// Diagnostics use the Logger from pkg/log.
package ports
