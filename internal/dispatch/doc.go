// Package dispatch routes parsed pipelines to builtin handlers or the
// process executor.
//
// A single-stage pipeline whose program is a registered builtin is
// handled in-process with no child spawned. When a builtin heads a
// multi-stage pipeline, it runs synchronously first; on success its
// captured stdout is materialized as a synthetic literal-echo stage so
// the output flows through a real pipe into the external stages, and
// on failure the pipeline short-circuits without spawning anything.
// Everything else goes to the executor.
//
// The builtin table is a name->handler registry. Besides the fixed
// builtins (exit, cd, pwd, alias, unalias, export, unset, history,
// help), user plugins may register additional handlers.
package dispatch
