package mediainfo

import (
	"fmt"
	"strconv"
)

// formatPlainValue renders a field value without quoting.
func formatPlainValue(value any) string {
	switch v := value.(type) {
	case nil:
		return NotPresent
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
