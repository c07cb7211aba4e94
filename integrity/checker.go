package integrity

// Checker is the optional integrity-verification capability spec.md §4.1
// and §6 describe: consulted before a plugin file is opened, and again
// after its constructor symbol is resolved. It is deliberately a small
// two-predicate interface so a caller that doesn't care about integrity
// checking can pass Noop and the loader never has to special-case its
// absence.
type Checker interface {
	// CheckFile verifies the plugin file at path named name before it is
	// opened.
	CheckFile(name, path string) bool
	// CheckSegment verifies the resolved constructor symbol for the
	// plugin named name.
	CheckSegment(name string, symbol interface{}) bool
}

type noop struct{}

func (noop) CheckFile(name, path string) bool          { return true }
func (noop) CheckSegment(name string, sym interface{}) bool { return true }

// Noop is a Checker that accepts everything, used when integrity checking
// has not been configured.
var Noop Checker = noop{}
