// Package ui formats what the auth commands print.
//
// Formatters color a single value:
//
//	ui.Code.Sprint("triplo-webui auth set")
//	ui.Path.Sprint(settings.AuthFile)
//	ui.Highlight.Sprint("admin")
//
// Status helpers build whole lines with a marker:
//
//	ui.Lines(
//		ui.Failed("Auth config not found"),
//		ui.Hint("Run "+ui.Code.Sprint("triplo-webui auth set")+" to create it"),
//	)
//
// With NO_COLOR set, or when color is unavailable, Code is wrapped in
// `backticks` and Highlight in 'quotes'.
package ui
