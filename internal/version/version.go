// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Orbit and sky panes in the terminal, Earth dragging, PNG export,
//         headless summary/table/mini-sky/JSON, WebAssembly page
