// Package egg provides the document model and renderer for Panda3D EGG
// scene-description text.
//
// # Overview
//
// An EGG file is a flat sequence of brace-delimited blocks. Each block has a
// header naming its kind and, optionally, an instance name, followed by an
// ordered body of scalars, tuples and nested blocks:
//
//	<CoordinateSystem> { Z-up }
//
//	<VertexPool> box {
//	    <Vertex> 1 {
//	        0 1 1
//	        <UV> { 1 1 }
//	    }
//	}
//
// This package models a block as an [Entry] and the file as a [Document].
// Building a tree and rendering it are separate phases: callers construct
// entries with [New] or [NewNamed], populate them with [Entry.Append], and
// finally ask the root for its lines with [Document.Render]. Rendering never
// performs I/O; writing the lines somewhere is left to package io.
//
// # Children
//
// Entry children form a closed set, expressed by the sealed [Child]
// interface:
//
//   - [Scalar]: one number or string, see [Int], [Float], [Float32], [String]
//   - [Tuple]: an ordered list of scalars rendered space-separated, see
//     [Vec], [Ints], [Floats]
//   - [*Entry]: a nested block rendered one indentation level deeper
//
// [ValueOf] converts loosely typed Go values into children for callers that
// assemble trees from decoded data.
//
// # Rendering Shapes
//
// An entry renders in one of three shapes depending on its children:
//
//   - no children: a single line, "<Kind> name {}"
//   - exactly one scalar or tuple: inline, "<Kind> name { 1 1 1 }"
//   - anything else: block form, one indented line per child and a closing
//     brace on its own line
//
// A single nested entry is never inlined. Indentation is four spaces per
// nesting level and accumulates through recursion.
//
// # Ownership
//
// Appending an entry transfers it to its new parent. An entry that already
// has a parent cannot be appended again, and an entry cannot be appended
// into its own subtree, so every tree is acyclic by construction. Appending
// does not validate child shapes; a nil child, an empty tuple or a value
// containing a line break is reported by Render as a [*ChildError] carrying
// the path to the offending position.
//
// # Numbers
//
// Numbers render in the shortest plain decimal form that reads back to the
// same value. No fixed precision is imposed: 0.1 stays "0.1" and 1e-7 becomes
// "0.0000001".
package egg
