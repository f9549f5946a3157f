package anim

import "fmt"

// assert reports a programming error. It logs and returns false in normal
// builds so callers can fall back to a safe default; builds tagged
// animdebug panic instead.
func assert(cond bool, msg string, args ...any) bool {
	if cond {
		return true
	}
	Logger().Error(msg, args...)
	if debugAsserts {
		panic(fmt.Sprint(append([]any{msg, " "}, args...)...))
	}
	return false
}
