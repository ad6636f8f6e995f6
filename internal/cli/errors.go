package cli

import (
	"fmt"

	"github.com/arthur-debert/coffle/pkg/errors"
)

// FormatError turns an error returned by the root command into the message
// shown to the user. Repository and status problems get fixed messages;
// everything else is shown as is.
func FormatError(err error) string {
	switch errors.GetErrorCode(err) {
	case errors.ErrNotRepository:
		path, _ := errors.GetErrorDetails(err)["path"].(string)
		return fmt.Sprintf(MsgNotRepository, path)
	case errors.ErrConfigCorrupt:
		return MsgConfigCorrupt
	case errors.ErrConfigNotRecord:
		return MsgConfigNotRecord
	case errors.ErrVersionMissing:
		return MsgVersionMissing
	case errors.ErrVersionNotInteger:
		return MsgVersionNotInteger
	case errors.ErrVersionTooNew:
		return MsgVersionTooNew
	case errors.ErrStatusCorrupt:
		return MsgStatusCorrupt
	case errors.ErrStatusVersion:
		return MsgStatusVersion
	default:
		return fmt.Sprintf(MsgErrorFormat, err)
	}
}
