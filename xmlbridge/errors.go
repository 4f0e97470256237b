package xmlbridge

import "github.com/pkg/errors"

func errUnknownKind(k int) error {
	return errors.Errorf("xmlbridge: no XML tag defined for property kind %d", k)
}

func errUnknownTag(tag string) error {
	return errors.Errorf("xmlbridge: unrecognized XML tag %q", tag)
}
