// Package core holds process-level plumbing shared by the binary and its goroutines.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var (
	crashMu     sync.Mutex
	crashScreen tcell.Screen

	// Replaced in tests
	crashOutput io.Writer = os.Stderr
	exitFunc              = os.Exit
)

// SetCrashScreen registers the screen to finalize before a crash report
// Pass nil once the screen has been finalized normally
func SetCrashScreen(screen tcell.Screen) {
	crashMu.Lock()
	crashScreen = screen
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state before anything is printed
	crashMu.Lock()
	if crashScreen != nil {
		crashScreen.Fini()
		crashScreen = nil
	}
	crashMu.Unlock()

	fmt.Fprintf(crashOutput, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(crashOutput, "Stack Trace:\n%s\n", debug.Stack())

	exitFunc(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
