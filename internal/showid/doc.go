// Package showid extracts show identity from archive folder names.
package showid
