package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wavseek/tunesnip/internal/timefmt"
)

// ClipFilename names an uploaded clip after its source file and range:
// "<original-stem> (<m:ss>-<m:ss>)<original-ext>".
func ClipFilename(original string, start, end float64) string {
	base := filepath.Base(original)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s (%s-%s)%s", stem, timefmt.Seconds(start), timefmt.Seconds(end), ext)
}
