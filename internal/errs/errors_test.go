package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestTaggedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		err    error
		kind   error
		status int
	}{
		{NotFoundf("module %s not found", "mod-9"), ErrNotFound, http.StatusNotFound},
		{Conflictf("already exists"), ErrConflict, http.StatusConflict},
		{Invalidf("bad input"), ErrInvalid, http.StatusBadRequest},
	}
	for _, c := range cases {
		if !errors.Is(c.err, c.kind) {
			t.Fatalf("%v: expected errors.Is(%v)", c.err, c.kind)
		}
		var tagged *Error
		if !errors.As(c.err, &tagged) {
			t.Fatalf("%v: expected *Error", c.err)
		}
		if tagged.Status() != c.status {
			t.Fatalf("%v: status %d, want %d", c.err, tagged.Status(), c.status)
		}
	}
}

func TestWrappedTaggedErrorKeepsMessage(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFoundf("Financial term with ID %s not found", "term-42"))
	var tagged *Error
	if !errors.As(err, &tagged) {
		t.Fatalf("expected *Error in chain")
	}
	if tagged.Error() != "Financial term with ID term-42 not found" {
		t.Fatalf("unexpected message: %q", tagged.Error())
	}
}
