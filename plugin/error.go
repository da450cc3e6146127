package plugin

// ErrorKind enumerates plugin-host problems (grounded on `plugin/error.rs`'s
// PluginError, extended with the lookup failure a static built-in registry
// needs that a dynamic script host didn't).
type ErrorKind int

const (
	// ErrScriptException mirrors the original's ScriptException: a
	// built-in's own logic failed during a lifecycle hook.
	ErrScriptException ErrorKind = iota
	// ErrUnknownPlugin is raised when an export request names a plugin
	// id the host has no instance for.
	ErrUnknownPlugin
	// ErrInvalidPayload is raised by an export hook given a payload
	// shape it cannot use (grounded on the `export_error!` call sites
	// in `native/export_mist.rs` / `builtin/livesplit.rs`).
	ErrInvalidPayload
)

// Error is a plugin-host error. Unlike comp/exec errors it IS fatal to
// the request it occurs in (spec §4.13, `plugin/error.rs`'s
// `is_error() == true`) — a failing lifecycle hook is reported as a
// diagnostic by Host rather than aborting the whole run, but a failing
// export call returns this error to its caller.
type Error struct {
	Kind ErrorKind
	Arg  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrScriptException:
		return "an exception occurred while executing plugin: " + e.Arg
	case ErrUnknownPlugin:
		return "unknown plugin `" + e.Arg + "`"
	case ErrInvalidPayload:
		return "invalid export payload: " + e.Arg
	default:
		return "unknown plugin error"
	}
}

// Source matches the original's `PluginError::source() == "celerc/plugins"`.
func (e *Error) Source() string { return "celerc/plugins" }
