// Package models defines the core domain models for hotel billing.
//
// # Collections
//
// The billing state is made of five collections, each persisted as a whole
// under its own storage key:
//   - MenuItem: something that can be ordered, with its price and GST rate
//   - Table: a seat group that can hold at most one open bill
//   - Waiter: a name that bills are attributed to
//   - User: a login account with a role (admin or staff)
//   - Bill: a table's tab, holding BillLine snapshots
//
// # Design Principles
//
// 1. **Snapshots, not links**: a BillLine copies the menu item's name, price
// and GST when first added, and a Bill copies the waiter's name. Editing or
// deleting the source later never rewrites history.
// 2. **References by ID**: Table.CurrentBillID and Bill.TableID are plain ID
// strings; nothing holds pointers across collections.
// 3. **Storage format**: JSON tags match the keys the billing client has
// always written (camelCase, `qty`, `gst`), so existing data loads as-is.
// The one exception is users: older records kept a plaintext `password`,
// which is hashed into PasswordHash on load and not written back.
package models
