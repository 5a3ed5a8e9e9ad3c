package resolver

import "os"

// PathExists is the ExistsFunc used outside of tests
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
