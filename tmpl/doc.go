// Package tmpl compiles per-level line templates and renders log records
// through them. It is the formatting core behind the [log] package: every
// record is formatted by the plan compiled for its exact level, and a level
// with no plan is a hard error rather than a silent fallback.
//
// # Syntax
//
// A template is literal text mixed with brace declarations:
//
//	{message}                              field, default attributes
//	{reason: width=24, align=right}        field with attributes
//	{pad}  {pad: fill=., width=3}          padding run
//	{if reason}({reason}){end}             conditional group, nestable
//	{{  }}                                 literal braces
//
// Field attributes are width, truncate, align (left, right, center), fill
// (a single-column character), color, style (a comma-separated list, quote
// the value), and default. Padding accepts fill and width; without a width
// it emits exactly one fill character. Values are bare tokens or double
// quoted with \\ \" \n \t escapes. The names if, end, and pad are
// reserved.
//
// Templates compile eagerly with [Parse]: unclosed conditionals, malformed
// attribute lists, and unknown attribute keys are [SyntaxError] values
// raised at load time, never during rendering.
//
// # Rendering
//
// [Set.Render] walks the level's plan in order. Fields format through a
// fixed pipeline: absent or empty values substitute their default,
// truncation cuts to a display-width budget with the marker counted inside
// it, padding aligns to the declared width (never cropping a value that is
// already wider), and declared colors and styles wrap the result with a
// terminating reset. Unknown color or style names degrade the field to
// unstyled output; [Set.Validate] reports them. Widths count terminal
// columns per grapheme cluster, so emoji occupy one column regardless of
// how many code points compose them. Rendered output is always a single
// line: embedded newlines become spaces.
//
// A conditional group renders only when its guard field is present and
// non-empty; false booleans and numeric zero also read as absent.
//
// # Sources
//
// Templates arrive from three places, all resolved through [Resolve]:
// builtin presets (default, basic, precommit, none) embedded in the
// binary, templates registered at run time with [Register], and custom
// template directories loaded with [LoadDir]. A directory holds a required
// base.tpl plus optional per-level files that replace the attributes of
// fields the base declares, which is how the builtin presets restyle their
// status field per level.
package tmpl
