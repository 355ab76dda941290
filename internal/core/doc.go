// Package core provides the business logic of the CSV visualizer.
//
// The package holds all domain logic independent of any UI or transport
// layer. The web server and the inspect command both drive it through
// [Session], so a control behaves the same in the browser and the terminal.
//
// # Pipeline
//
// Every view is derived from a [Dataset] and a [ViewState] by pure stage
// functions, run in a fixed order by [BuildView]:
//
//  1. [ClassifyNumeric] finds the columns that are mostly numbers (once per dataset)
//  2. [SortRows] orders rows by plain string comparison, stably
//  3. [FilterRows] keeps rows containing the query, ignoring case
//  4. [Paginate] slices the filtered rows and clamps the page
//  5. [RepairAxes] and [Project] map the sorted rows to chart points
//
// The stages never modify their input. The chart is projected from the
// sorted rows before filtering, so filtering the table does not change it.
//
// # Sessions and Ingestion
//
// A [Session] is the only mutable state: the current dataset plus its
// controls. Each ingestion attempt takes an [IngestTicket] from
// [Session.BeginIngest]; [Session.FinishIngest] applies only the result of
// the most recent ticket, so a slow upload can never overwrite a newer one.
// A failed ingestion clears the dataset. While an attempt is pending, or
// when nothing is loaded, every control returns [ErrNotReady] and changes
// nothing.
//
// [Service] runs ingestions behind an [UploadLimiter] and keeps sessions in a
// [SessionStore] that expires idle sessions.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE006: File errors (size, format, empty, type)
//   - SMP001-SMP002: Sample dataset errors
//   - UPL002-UPL005: Ingestion errors (busy, cancelled, timeout)
//   - SES001, VIEW001-VIEW004: Session and control errors
package core
