package keystream

import "github.com/pkg/errors"

func errUnknownSelector(sel Selector) error {
	return errors.Errorf("keystream: unknown selector %q", sel)
}
