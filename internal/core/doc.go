// Package core provides the business logic of the catalog admin.
//
// The package owns the in-memory product catalog and everything computed from
// it, independent of any UI or transport layer. It can be used by web
// handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - State: the full product list plus search text, sort toggle, page and
//     page size. Every mutator re-clamps the page.
//   - Pipeline: a pure function from State to [Page]: filter by title,
//     stable sort, then paginate.
//   - Service: the single coordinator. Query commands and remote mutations
//     go through it, and each state step runs under one lock.
//   - Export: CSV rendering of the visible page.
//
// # Query Flow
//
// Every command returns the freshly computed page:
//
//	page := svc.SetSearch("shirt")   // page 1 of matching products
//	page = svc.ToggleSort(core.SortPrice)
//	page = svc.NextPage()
//
// The same operations are available as [Command] values through
// [Service.Dispatch] for callers that prefer a single entry point.
//
// # Mutations
//
// [Service.ApplyCreate] and [Service.ApplyEdit] parse a [ProductForm], send
// it to the catalog API and, only on success, fold the server's record into
// the local list. A form may have a single submission outstanding; a second
// one fails fast with [ErrSubmissionInFlight].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SUB001: Overlapping submission
//   - FORM001-FORM004: Form, page size, sort and command input
//   - CAT001-CAT002: Missing product, empty export
//   - VAL001, PARSE001, NET001-NET004: Catalog API failures
//
// # Audit Logging
//
// Loads, creates and edits are recorded through an [audit.Recorder] with
// their outcome, duration and request metadata.
package core
