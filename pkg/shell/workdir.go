package shell

import "os"

// WorkingDir is the only process-wide state the shell touches. cd is handed
// one instead of calling os.Chdir directly.
type WorkingDir interface {
	Getwd() (string, error)
	Chdir(dir string) error
}

// OSWorkingDir uses the real process working directory.
type OSWorkingDir struct{}

func (OSWorkingDir) Getwd() (string, error) {
	return os.Getwd()
}

func (OSWorkingDir) Chdir(dir string) error {
	return os.Chdir(dir)
}

var _ WorkingDir = OSWorkingDir{}
