package bmff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/abema/go-mp4"
)

// unmarshal decodes the payload of a standard box into its go-mp4 form.
// Box bounds are already checked by Reader, so data is exactly the payload.
func unmarshal(data []byte, box mp4.IBox) error {
	_, err := mp4.Unmarshal(bytes.NewReader(data), uint64(len(data)), box, mp4.Context{})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %s payload", ErrUnexpectedEOF, box.GetType())
	default:
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
}
