// Package bridge builds and executes commands against the System Events
// scripting bridge. All AppleScript construction lives here so the rest of
// the code deals in typed requests and can run against a fake Runner.
package bridge

import "fmt"

// Script is an opaque AppleScript request.
type Script struct {
	text string
}

// Text returns the script source passed to osascript.
func (s Script) Text() string { return s.text }

func tellProcess(app, body string) Script {
	return Script{text: fmt.Sprintf("tell application \"System Events\" to tell process %q to %s", app, body)}
}

func tellProcessBlock(app, body string) Script {
	return Script{text: fmt.Sprintf(`tell application "System Events"
	tell process %q
		%s
	end tell
end tell`, app, body)}
}

// ProcessRunning reports whether the named process exists. The result is the
// string "true" or "false".
func ProcessRunning(app string) Script {
	return Script{text: fmt.Sprintf("tell application \"System Events\" to (name of processes) contains %q", app)}
}

// CountWindows returns the number of top-level windows of the process.
func CountWindows(app string) Script {
	return tellProcess(app, "count windows")
}

// WindowTitle queries the name of window index (1-based).
func WindowTitle(app string, index int) Script {
	return tellProcess(app, fmt.Sprintf("get name of window %d", index))
}

// WindowPosition queries the screen position of window index. The result is
// "x, y".
func WindowPosition(app string, index int) Script {
	return tellProcess(app, fmt.Sprintf("get position of window %d", index))
}

// WindowSize queries the size of window index. The result is "width, height".
func WindowSize(app string, index int) Script {
	return tellProcess(app, fmt.Sprintf("get size of window %d", index))
}

// WindowMinimized queries the AXMinimized attribute of window index.
func WindowMinimized(app string, index int) Script {
	return tellProcess(app, fmt.Sprintf("get value of attribute \"AXMinimized\" of window %d", index))
}

// SetWindowMinimized sets the AXMinimized attribute of window index.
func SetWindowMinimized(app string, index int, minimized bool) Script {
	return tellProcessBlock(app, fmt.Sprintf("set value of attribute \"AXMinimized\" of window %d to %t", index, minimized))
}

// RaiseWindow brings the process frontmost and clicks window index to focus
// it.
func RaiseWindow(app string, index int) Script {
	return tellProcessBlock(app, fmt.Sprintf("set frontmost to true\n\t\tclick window %d", index))
}

// CloseWindow clicks the close button of window index.
func CloseWindow(app string, index int) Script {
	return tellProcessBlock(app, fmt.Sprintf("click button 1 of window %d", index))
}

// MoveWindow sets the position of window index.
func MoveWindow(app string, index, x, y int) Script {
	return tellProcessBlock(app, fmt.Sprintf("set position of window %d to {%d, %d}", index, x, y))
}

// ResizeWindow sets the size of window index.
func ResizeWindow(app string, index, width, height int) Script {
	return tellProcessBlock(app, fmt.Sprintf("set size of window %d to {%d, %d}", index, width, height))
}

// WindowContents dumps the entire UI element subtree of window index as text.
func WindowContents(app string, index int) Script {
	return tellProcessBlock(app, fmt.Sprintf("tell window %d\n\t\t\tget entire contents\n\t\tend tell", index))
}

// Keystroke types literal text into the frontmost application.
func Keystroke(text string) Script {
	return Script{text: fmt.Sprintf("tell application \"System Events\" to keystroke %q", text)}
}

// KeyCode presses a key by hardware code (36 = Return).
func KeyCode(code int) Script {
	return Script{text: fmt.Sprintf("tell application \"System Events\" to key code %d", code)}
}

// ReturnKeyCode is the macOS virtual key code for the Return key.
const ReturnKeyCode = 36

// RecognizeText runs the Vision framework's text recognizer over a PNG on
// disk and returns the recognized lines, one per line of output.
func RecognizeText(imagePath string) Script {
	return Script{text: fmt.Sprintf(`use framework "Vision"
use framework "Foundation"
use framework "AppKit"

on run
	set imagePath to %q
	set theImage to current application's NSImage's alloc()'s initWithContentsOfFile:imagePath

	if theImage is missing value then
		return "Error: Could not load image"
	end if

	set imageRep to theImage's representations()'s objectAtIndex:0
	set theCGImage to imageRep's CGImage()

	set request to current application's VNRecognizeTextRequest's alloc()'s init()
	request's setRecognitionLevel:(current application's VNRequestTextRecognitionLevelAccurate)

	set requestHandler to current application's VNImageRequestHandler's alloc()'s initWithCGImage:theCGImage options:(current application's NSDictionary's dictionary())

	requestHandler's performRequests:{request} |error|:(missing value)

	set results to request's results()
	set textResults to ""

	repeat with observation in results
		set candidate to (observation's topCandidates:1)'s objectAtIndex:0
		set textResults to textResults & (candidate's |string|() as string) & linefeed
	end repeat

	return textResults
end run`, imagePath)}
}
