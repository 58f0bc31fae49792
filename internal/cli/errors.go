package cli

import (
	"errors"
	"fmt"

	"studhub/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type flagError struct {
	flag   string
	value  any
	reason string
}

func (e flagError) Error() string {
	return fmt.Sprintf("invalid --%s %v: %s", e.flag, e.value, e.reason)
}

func errFlag(flag string, value any, reason string) error {
	return flagError{flag: flag, value: value, reason: reason}
}

// listingErr maps store lookups to the CLI's not-found message.
func listingErr(id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound("listing", id)
	}
	return err
}
