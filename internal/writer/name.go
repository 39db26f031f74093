package writer

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Separator splits the fields of a sample name.
const Separator = "-*-"

// TimeLayout formats the time field of a sample name.
const TimeLayout = "15-04-05"

// ErrBadName is returned by ParseName for names not produced by SampleName.
var ErrBadName = errors.New("not a sample name")

var nameEscaper = strings.NewReplacer("%", "%25", "/", "%2F", `\`, "%5C")

// SampleName returns the extension-less name of sample i of text written at t.
// Path separators and percent signs in text are percent-encoded.
func SampleName(text string, i int, t time.Time) string {
	return nameEscaper.Replace(text) + Separator + strconv.Itoa(i) + Separator + t.Format(TimeLayout)
}

// ParseName recovers the text and sample index from a file name or key
// produced by SampleName. A directory prefix and an extension are ignored.
func ParseName(name string) (text string, index int, err error) {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	// The text itself may contain the separator, so split from the right.
	last := strings.LastIndex(name, Separator)
	if last < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	head := name[:last]
	mid := strings.LastIndex(head, Separator)
	if mid < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	index, err = strconv.Atoi(head[mid+len(Separator):])
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad index in %q", ErrBadName, name)
	}
	text, err = url.PathUnescape(head[:mid])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrBadName, err)
	}
	return text, index, nil
}
