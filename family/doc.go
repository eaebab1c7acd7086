// Package family models the design space of a synthesis problem.
//
// A Family is an ordered list of holes. Each hole is a named decision with a
// fixed table of option labels and a mutable set of options still assumed
// possible. The product of the assumed set sizes is the number of concrete
// assignments the family stands for.
//
// Families are refined by copying and restricting: Split produces disjoint
// children that differ from the parent in one hole only. Label tables and hole
// names are shared by every copy and never written after AddHole, so they may
// be read from any goroutine. The assumed option sets belong to exactly one
// Family value; a Family handed to several consumers must not be mutated.
package family
