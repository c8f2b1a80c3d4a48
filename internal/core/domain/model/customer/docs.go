// Package customer holds the Customer aggregate.
package customer
