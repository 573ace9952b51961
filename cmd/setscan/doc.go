// Command setscan reconciles free-form setlist text files against the
// canonical show catalog: scanning archives for discrepancies, resolving
// individual titles, previewing parses, and planning disc layouts.
package main
