// Package platform carries the two booleans the rest of drsh branches
// on instead of scattering build tags everywhere, per the design
// note in the reference source: path-separator interpretation and
// environment case-sensitivity are passed as plain booleans into
// otherwise shared routines, so that both configurations stay
// testable from any host.
package platform

import "runtime"

// Flavor is the OS family tag stored on the Environment.
type Flavor int

const (
	Apple Flavor = iota
	Windows
	Linux
	Other
)

func (f Flavor) String() string {
	switch f {
	case Apple:
		return "apple"
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	default:
		return "other"
	}
}

// Host is the Flavor of the runtime host.
func Host() Flavor {
	switch runtime.GOOS {
	case "darwin", "ios":
		return Apple
	case "windows":
		return Windows
	case "linux":
		return Linux
	default:
		return Other
	}
}

// IsDOSFamily reports whether a Flavor belongs to the back-slash
// separator, ';'-in-PATH, case-insensitive family.
func (f Flavor) IsDOSFamily() bool { return f == Windows }

// DOSFamily and POSIXFamily name the two values of a DOS-family
// boolean, independent of the host.
const (
	DOSFamily   = true
	POSIXFamily = false
)
