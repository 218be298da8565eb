// Package xmlevents adapts low-level tokenizers into the flat event stream
// consumed by the glob-events engine: element opens with decoded attributes,
// character data, and element closes with guaranteed stack discipline.
package xmlevents
