//go:build debug

package debug

// Guard more complex checks (i.e. anything that could fault by itself) with
// `if debug.Enabled{...}`, otherwise they can't be removed in release builds.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}
