//go:build !linux && !darwin

package mediainfo

// StatFile returns the size and modification time of path.
func StatFile(path string) (FileStat, error) {
	return statPortable(path)
}
