// Package privilege reports whether the process has administrative rights.
package privilege

// Checker answers the elevation question. The installer asks exactly once,
// before touching anything.
type Checker interface {
	IsElevated() (bool, error)
}

// OS is the Checker backed by the running operating system.
type OS struct{}

func (OS) IsElevated() (bool, error) {
	return isElevated()
}

// Static is a Checker with a fixed answer.
type Static bool

func (s Static) IsElevated() (bool, error) {
	return bool(s), nil
}
