// Package io writes rendered EGG documents to files and streams.
//
// # Overview
//
// Package egg turns an Entry tree into an ordered list of lines and stops
// there. This package is the sink on the other side: it terminates every line
// with a newline, encodes the text in a named character set, and places the
// result in a file with the conventional ".egg" extension.
//
//	lines, err := doc.Render()
//	if err != nil {
//	    return err
//	}
//	if err := io.WriteLines(os.Stdout, lines, io.DefaultEncoding); err != nil {
//	    return err
//	}
//
// [ExportFile] combines rendering and writing for anything with a Render
// method, which covers both *egg.Document and *egg.Entry.
//
// # Encodings
//
// Encodings are looked up by IANA name (case-insensitive, aliases allowed)
// through golang.org/x/text/encoding/ianaindex. UTF-8 is the default and what
// Panda3D expects unless told otherwise; single-byte sets such as ISO-8859-1
// are accepted for older pipelines. Text that cannot be represented in the
// chosen encoding fails the write instead of being silently replaced.
package io
