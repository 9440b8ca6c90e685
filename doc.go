// Package enumtext is the composition root for enumtext, a display-template
// binder for tagged unions.
//
// Every variant of an enum carries a template such as
// "Unnamed error: {0:?}, {1}, 0x{2:0x}". Templates are parsed, bound to the
// variant's fields and checked against the fields' capabilities once, ahead
// of time. Rendering an instance afterwards cannot fail.
//
// Placeholders:
//
//	{0}  {name}        default form (String, Error, or natural text)
//	{0:?}              structured form, e.g. State { code: 2 }
//	{0:0x}             lowercase hex without prefix, integral fields only
//	{{  }}             literal braces
//
// Three front-ends share the same engine:
//
//   - Compile / CompileEnum take explicit shapes.
//   - NewTyped derives shapes from Go struct types implementing a marker
//     interface, for error enums and the like.
//   - Open loads enums declared in YAML or JSON files and can watch them.
//
// Usage:
//
//	var someError = enumtext.MustNewTyped[SomeError]("SomeError",
//		enumtext.Case[NotFound]("{path} not found"),
//		enumtext.Case[Status]("status 0x{0:0x}"),
//	)
//
//	func (e NotFound) Error() string { return someError.Render(e) }
package enumtext
