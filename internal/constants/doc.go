// Package constants holds values shared across packages that have no better home.
package constants
