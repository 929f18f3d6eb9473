// Package wp defines the object shapes theme code expects: posts, users,
// terms and options, plus the three result shapes a data-access call can
// request.
//
// Every object exposes its attributes as an ordered column list. The
// associative shape (Row) and the positional shape ([]any) are both derived
// from that list, so positional index i always holds the value of the i-th
// associative key.
package wp
