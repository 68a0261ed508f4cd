// Package normalize turns grammar captures into canonical numeric fields and
// owns the range checks applied at every input boundary.
package normalize
