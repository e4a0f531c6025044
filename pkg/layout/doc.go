// Package layout provides the row → column → field tree that a form layout
// is built from.
//
// # Overview
//
// A [Tree] holds an ordered sequence of [Row] values, each row holds an
// ordered sequence of [Column] values laid out on a 12-unit grid, and each
// column holds an ordered sequence of [Field] leaves. A tree may also carry a
// single optional root element: a Field-shaped node describing the enclosing
// document-level container (for example a submission wrapper). The root
// element never owns rows; renderers place it after the row sequence.
//
// Ownership is strict: every node has exactly one parent, there are no
// shared nodes between trees and no cycles. Nodes are created by the
// mutation engine (package engine), never directly by hosts.
//
// # Grid Invariant
//
// The widths of the columns of a non-empty row always sum to [GridUnits].
// [Row.Redistribute] restores the invariant after any change in column
// count: each column gets 12/n units and the first 12%n columns one extra.
//
//	r := &layout.Row{ID: "row-1"}
//	r.Columns = append(r.Columns, &layout.Column{ID: "column-1"}, &layout.Column{ID: "column-2"})
//	r.Redistribute() // widths 6, 6
//
// # Snapshots
//
// [Tree.Snapshot] returns a deep copy together with [Metadata]; renderers
// and serializers only ever see snapshots, so they cannot mutate the live
// tree.
//
// # Concurrency
//
// Trees are not safe for concurrent use. The designer mutates a tree from
// a single event loop.
package layout
