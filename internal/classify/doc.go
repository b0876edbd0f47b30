// Package classify decides, per raw input line, whether the line is a
// shell command, natural language for the assistant, or a farewell
// that should end the session.
//
// Classification is a pure function of the line plus a cached index of
// executable names found on $PATH. It never executes anything and is
// called on every submitted line, so it must stay cheap.
//
// The path index is the only long-lived shared structure: the shell
// owns it, and completion/highlighting consumers hold a read-only
// reference. Rebuilds are copy-then-swap under a RWMutex so readers
// never observe a partially built index. An optional fsnotify watcher
// reloads the index when files appear or disappear in $PATH
// directories.
package classify
