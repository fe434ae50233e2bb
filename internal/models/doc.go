// Package models defines the core domain models for the kirana ledger.
//
// # Entities
//
//   - Product: an item on the shelf, identified by PRODnnnn
//   - Customer: a shop customer, identified by CUSTnnnn and looked up by phone
//   - Bill: an immutable sale record, identified by BILLnnnn
//
// Relationships are ID strings, never pointers. A Bill keeps a weak reference
// to its customer and to the products on its lines; deleting a product does not
// touch bills that already mention it.
//
// # Money
//
// Prices, rates, quantities and totals are decimal.Decimal so that
// total == subtotal + gst - discount holds exactly after a save and reload.
//
// # Snapshot
//
// Snapshot is the unit of persistence: every store reads and writes the whole
// ledger at once, keyed by entity type and then by ID.
package models
