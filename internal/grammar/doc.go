// Package grammar recognizes the textual dialects PostgreSQL accepts for
// interval, timestamp, date and time input.
//
// Every dialect is a small hand-written parser anchored at both ends of the
// input. A successful match returns a flat capture struct whose fields hold
// the digits exactly as written; turning those into values is left to the
// normalize package. Dialects are tried in a fixed priority order and the
// first that matches wins.
package grammar
