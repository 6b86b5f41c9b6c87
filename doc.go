// Package commerce provides the building blocks for a small storefront
// backend: account registration and sign-in, stateless JWT sessions
// (access + refresh pairs signed with distinct secrets), request identity
// resolution, role/status guards, and a product catalog with an admin
// approval workflow.
//
// Identity and sessions:
//   - Access tokens embed the account's id, email, status, and role at issue
//     time. The identity middleware trusts those claims and never re-reads
//     the users table, so a status change only bites on the next issued
//     token. Suspend an account to block new sign-ins immediately.
//   - Refresh tokens carry only the user id. The last-issued refresh token
//     is persisted per account for future invalidation.
//
// Catalog lifecycle:
//   - Products are created pending and listed publicly only once approved.
//     Owners edit their own products but never the approval status; admins
//     drive the approval state machine and nothing else.
package commerce
