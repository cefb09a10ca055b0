package storage

import (
	"os"
)

// WorkspaceInspector answers basic questions about workspace files, used
// by the doctor command to diagnose a broken .cadence directory.
type WorkspaceInspector struct{}

func NewWorkspaceInspector() *WorkspaceInspector {
	return &WorkspaceInspector{}
}

func (i *WorkspaceInspector) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func (i *WorkspaceInspector) FileNotEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}
