// Package integration contains the ERP Integration bounded context.
// The facade does not own any business data: customers, orders, invoices and
// pickings live in the remote Odoo instance and are reached through ports.
//
// Key concepts:
//   - RemoteFault: a fault raised by the remote service, classified by kind
//   - ServerStatus: connectivity report of the remote service
//   - StatusProvider: port for probing the remote service
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined in the domain layer
//   - Adapters (implementations) are in internal/infrastructure/odoo
package integration
