// Package scene is a host-neutral description of the geometry that pandaegg
// exports.
//
// # Overview
//
// Authoring tools keep far richer data than an EGG exporter needs. A [Scene]
// captures just that subset: named objects, their mesh data, vertex
// positions with optional UV and normal attributes, and polygons expressed
// as vertex indices. Positions are taken as already being in world space;
// no transformation is applied on export.
//
// # File Formats
//
// Scenes are read from JSON or TOML with identical field names:
//
//	name = "demo"
//
//	[[objects]]
//	name = "box"
//	type = "MESH"
//
//	[objects.mesh]
//	name = "box"
//	vertices = [
//	    { co = [0.0, 1.0, 1.0], uv = [1.0, 1.0] },
//	]
//	polygons = [
//	    { vertices = [0, 1, 2], normal = [0.0, -1.0, 0.0] },
//	]
//
// [Import] picks the decoder from the file extension; [ReadJSON] and
// [ReadTOML] work on streams.
//
// # Validation
//
// [Scene.Validate] rejects names that would corrupt an entry header and
// polygons that reference missing vertices. Decoding functions validate
// before returning.
package scene
