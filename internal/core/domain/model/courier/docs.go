// Package courier contains the Courier aggregate: the delivery agents who
// are assigned shipments and record their tracking events.
//
// Couriers authenticate with an e-mail address and a password. The aggregate
// only ever holds the password hash; hashing and verification live in the
// auth package.
package courier
