//go:build linux

package mediainfo

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// StatFile returns the size and times of path. Birth time is only reported
// when the filesystem records it.
func StatFile(path string) (FileStat, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BASIC_STATS | unix.STATX_BTIME
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return statPortable(path)
	}
	if err != nil {
		return FileStat{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	st := FileStat{Size: int64(stx.Size)}
	if stx.Mask&unix.STATX_MTIME != 0 {
		st.Modified = seconds(stx.Mtime.Sec)
	}
	if stx.Mask&unix.STATX_ATIME != 0 {
		st.Accessed = seconds(stx.Atime.Sec)
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		st.Created = seconds(stx.Btime.Sec)
	}
	return st, nil
}
