// Package support models tickets raised by customers and couriers and the
// comments admins leave on them.
package support
