package args_test

import (
	"flag"
	"testing"

	"github.com/opst/smsctl/pkg/utils/args"
)

func TestOptional(t *testing.T) {
	t.Run("when it parses an acceptable value, parsing success", func(t *testing.T) {
		testee := args.OptionalPositive()
		if testee.IsSet() {
			t.Error("it is set, unexpectedly")
		}
		if testee.Ptr() != nil {
			t.Error("unset value has a pointer")
		}

		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.Var(testee, "arg", "")

		if err := f.Parse([]string{"-arg", "12"}); err != nil {
			t.Fatal(err)
		}

		if testee.Value() != args.Int(12) {
			t.Errorf("unmatch: Value(): (actual, expected) = (%d, %d)", testee.Value(), 12)
		}
		if !testee.IsSet() {
			t.Error("it is not set")
		}
		if p := testee.Ptr(); p == nil || *p != 12 {
			t.Errorf("unmatch: Ptr(): %v", p)
		}
		if s := testee.String(); s != "12" {
			t.Errorf("unmatch: String(): %s", s)
		}
	})

	t.Run("when it parses an unacceptable value, parsing errors", func(t *testing.T) {
		for _, in := range []string{"0", "-3", "x"} {
			testee := args.OptionalPositive()

			f := flag.NewFlagSet("test", flag.ContinueOnError)
			f.Var(testee, "arg", "")

			if err := f.Parse([]string{"-arg", in}); err == nil {
				t.Errorf("expected error does not happen: %s", in)
			}
			if testee.IsSet() {
				t.Errorf("it is set, unexpectedly: %s", in)
			}
		}
	})

	t.Run("an explicit zero is told apart from unset", func(t *testing.T) {
		testee := args.OptionalFloat()

		f := flag.NewFlagSet("test", flag.ContinueOnError)
		f.Var(testee, "score", "")
		if err := f.Parse([]string{"-score", "0"}); err != nil {
			t.Fatal(err)
		}
		if p := testee.Ptr(); p == nil || *p != 0 {
			t.Errorf("unmatch: Ptr(): %v", p)
		}
	})
}
