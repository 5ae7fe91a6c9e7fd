// Package darwin registers the macOS backends: osascript for scripting and
// the screencapture tool for window captures.
package darwin
