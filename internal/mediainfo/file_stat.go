package mediainfo

import "os"

// FileStat is the filesystem view of a media file. Each time is seconds
// since the Unix epoch, nil when the platform cannot supply it.
type FileStat struct {
	Size     int64
	Created  *int64
	Modified *int64
	Accessed *int64
}

// statPortable only knows the modification time.
func statPortable(path string) (FileStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileStat{}, err
	}
	mod := info.ModTime().Unix()
	return FileStat{Size: info.Size(), Modified: &mod}, nil
}

func seconds(v int64) *int64 {
	return &v
}
