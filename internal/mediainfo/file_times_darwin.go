//go:build darwin

package mediainfo

import (
	"os"

	"golang.org/x/sys/unix"
)

// StatFile returns the size and times of path. Darwin filesystems always
// record a birth time, so Created is set.
func StatFile(path string) (FileStat, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileStat{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return FileStat{
		Size:     st.Size,
		Created:  seconds(st.Btim.Sec),
		Modified: seconds(st.Mtim.Sec),
		Accessed: seconds(st.Atim.Sec),
	}, nil
}
