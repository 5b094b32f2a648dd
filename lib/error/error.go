/*package error contains simple functions for reporting fatal fakegas errors.
Only the command should call them: library packages return errors instead.
*/
package error

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/phil-mansfield/fakegas/lib/logctx"
)

// exit is replaced in tests.
var exit = os.Exit

// External reports an error to the log and kills the program. It should be
// used when an error is something a user could reasonably be expected to fix
// through changes in configuration/data/environment. It has the same
// signature as the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	l := logctx.DefaultLogger()
	l.Error().Msg("fakegas exited early with the following error: " +
		fmt.Sprintf(format, a...))
	exit(1)
}

// Internal reports an error to the log along with a stack trace and kills
// the program. It should be used when the error requires a code dive to fix.
// It has the same signature as the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	l := logctx.DefaultLogger()
	l.Error().Str("stack", string(debug.Stack())).
		Msg("fakegas exited early with the following internal error: " +
			fmt.Sprintf(format, a...))
	exit(1)
}
